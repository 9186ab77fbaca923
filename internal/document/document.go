// Package document holds helpers for schemaless JSON documents stored as
// text columns: merge-writes and encoding.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Data is a decoded document.
type Data = map[string]any

// Merge applies src over dst the way a merge-write does: keys present in src
// overwrite, nested objects merge recursively, arrays and scalars are
// replaced wholesale, keys missing from src are kept. dst is not modified.
func Merge(dst, src Data) Data {
	out := make(Data, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap {
			out[k] = Merge(dstMap, srcMap)
			continue
		}
		out[k] = v
	}
	return out
}

// Encode serializes d for storage.
func Encode(d Data) (string, error) {
	if d == nil {
		d = Data{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored document. Empty input yields an empty document.
func Decode(raw string) (Data, error) {
	if strings.TrimSpace(raw) == "" {
		return Data{}, nil
	}
	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if d == nil {
		d = Data{}
	}
	return d, nil
}
