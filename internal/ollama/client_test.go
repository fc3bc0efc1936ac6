package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ollama-catalog/internal/telemetry"
)

const searchPage = `<html><body>
<a href="/library/qwen2">qwen2</a>
<a href="/library/llama3">llama3</a>
<a href="/library/llama3">llama3 again</a>
<a href="/library/mistral?tab=tags">mistral</a>
<a href="/library/">nothing</a>
<a href="/blog/llama3">blog</a>
<a href="https://ollama.com/library/external">absolute</a>
<a>no href</a>
</body></html>`

func newServer(t *testing.T, handler http.HandlerFunc) Client {
	client, _ := newRecordedServer(t, handler)
	return client
}

func newRecordedServer(t *testing.T, handler http.HandlerFunc) (Client, *telemetry.Recorder) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tel := &telemetry.Recorder{}
	client, err := NewClient(ClientOptions{
		BaseUrl:   server.URL,
		UserAgent: "catalog-test",
		Timeout:   5 * time.Second,
	}, tel)
	require.NoError(t, err)
	return client, tel
}

func TestDiscover(t *testing.T) {
	var userAgent string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("user-agent")
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, searchPage)
	})

	ids, err := client.Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"llama3", "mistral", "qwen2"}, ids)
	require.Equal(t, "catalog-test", userAgent)
}

func TestDiscoverKeepsEscapedIds(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<a href="/library/foo%3Abar">foo</a>
<a href="/library/phi3%2Bmini">phi3</a>
<a href="/library/gemma">gemma</a>
</body></html>`)
	})

	ids, err := client.Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"foo%3Abar", "gemma", "phi3%2Bmini"}, ids)
}

func TestDiscoverFailure(t *testing.T) {
	client, tel := newRecordedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := client.Discover(context.Background())
	require.ErrorContains(t, err, "status 503")
	require.Empty(t, tel.Reports("broken", ""), "discover failures are reported by the caller")
}

func TestDiscoverNoLinks(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>maintenance</p></body></html>`)
	})
	ids, err := client.Discover(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestFetchDetail(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/library/llama3":
			fmt.Fprint(w, `<html><body><h1>Llama3</h1></body></html>`)
		default:
			http.NotFound(w, r)
		}
	})

	doc, err := client.FetchDetail(context.Background(), "llama3")
	require.NoError(t, err)
	require.Equal(t, "Llama3", doc.Find("h1").Text())

	_, err = client.FetchDetail(context.Background(), "missing")
	require.Error(t, err)
}

func TestFetchDetailEscapedId(t *testing.T) {
	var requested string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.EscapedPath()
		fmt.Fprint(w, `<html><body><h1>foo:bar</h1></body></html>`)
	})

	doc, err := client.FetchDetail(context.Background(), "foo%3Abar")
	require.NoError(t, err)
	require.Equal(t, "foo:bar", doc.Find("h1").Text())
	require.Equal(t, "/library/foo%3Abar", requested)
}

func TestDumpDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage)
	}))
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "pages")
	client, err := NewClient(ClientOptions{BaseUrl: server.URL, DumpDir: dir}, &telemetry.Recorder{})
	require.NoError(t, err)

	_, err = client.Discover(context.Background())
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "search.html"))
}

func TestNewClientRejectsRelativeUrl(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseUrl: "ollama.com"}, &telemetry.Recorder{})
	require.Error(t, err)
}
