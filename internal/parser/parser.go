package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// Pair is one top-level member of a JSON object, in document order.
type Pair struct {
	Key   string
	Value json.RawMessage
}

type Document struct {
	Pairs      []Pair
	SourceFile string
}

var (
	ErrEmptyDocument = errors.New("document has no top-level keys")
	ErrNotObject     = errors.New("top-level JSON value is not an object")
	ErrTrailingData  = errors.New("unexpected data after top-level object")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// Parse decodes a JSON object into its ordered top-level pairs. Whitespace-only
// input and {} both yield ErrEmptyDocument.
func Parse(content []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if len(bytes.TrimSpace(trimmed)) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var pairs []Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: object key is %T", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid JSON at key %q: %w", key, err)
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}

	if len(pairs) == 0 {
		return nil, ErrEmptyDocument
	}
	return &Document{Pairs: pairs}, nil
}

// All yields the document's pairs in order.
func (d *Document) All() iter.Seq2[string, json.RawMessage] {
	return func(yield func(string, json.RawMessage) bool) {
		for _, pair := range d.Pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Strings decodes every value as a JSON string and yields the pairs in order.
func (d *Document) Strings() (iter.Seq2[string, string], error) {
	values := make([]string, len(d.Pairs))
	for i, pair := range d.Pairs {
		if err := json.Unmarshal(pair.Value, &values[i]); err != nil {
			return nil, fmt.Errorf("value for key %q is not a string", pair.Key)
		}
	}
	return func(yield func(string, string) bool) {
		for i, pair := range d.Pairs {
			if !yield(pair.Key, values[i]) {
				return
			}
		}
	}, nil
}
