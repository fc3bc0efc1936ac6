// Package restyutil keeps copies of fetched pages on disk for debugging selectors.
package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var nameReplacer = strings.NewReplacer("/", "_", "?", "_", "&", "_", "=", "_", ":", "_")

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates dir when missing and returns an output writing
// into it. Files already in dir are left alone, a dump of the same endpoint
// overwrites its file.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

// Name turns a request endpoint into a file name.
func Name(endpoint string) string {
	name := nameReplacer.Replace(strings.Trim(endpoint, "/"))
	if name == "" {
		name = "index"
	}
	return name + ".html"
}

// Write stores contents under the name of endpoint. Failures are logged, a
// missing dump never fails a fetch.
func (o FilesystemOutput) Write(endpoint string, contents []byte) {
	if o.directory == "" {
		return
	}
	err := os.WriteFile(filepath.Join(o.directory, Name(endpoint)), contents, 0600)
	if err != nil {
		slog.Warn("failed to write page dump", "endpoint", endpoint, "err", err)
	}
}
