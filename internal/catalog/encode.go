package catalog

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v the way every catalog file is written: two space indent,
// HTML characters and non-ASCII text left as is, trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single record file. Anything other than a JSON object is rejected.
func Unmarshal(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, errNotObject
	}
	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return Record{}, err
	}
	rec.normalize()
	return rec, nil
}

// UnmarshalCatalog decodes a combined catalog file.
func UnmarshalCatalog(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].normalize()
	}
	return records, nil
}
