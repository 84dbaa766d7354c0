package comb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeList encodes the matched texts of the operands of a composite node.
// The encoding is a JSON array of strings, without HTML escaping, e.g.
// ["1","+","2"]. A nil or empty list encodes as [].
func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		// Strings always encode.
		panic(err)
	}
	// Drop the newline written by Encode.
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// DecodeList decodes a string produced by EncodeList.
func DecodeList(s string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("not an encoded list: %w", err)
	}
	if items == nil {
		// Unmarshal leaves items nil for "null".
		return nil, fmt.Errorf("not an encoded list: %s", compactQuote(s))
	}
	return items, nil
}
