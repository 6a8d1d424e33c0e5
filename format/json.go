// Package format encodes extracted documents for output.
package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javamap/java"
)

// JSONEncoder writes document arrays as JSON. Set-valued collections are
// already sorted by the document assembler, so output for an unchanged
// input is byte-identical across runs.
type JSONEncoder struct {
	w      io.Writer
	indent bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// NewIndentedJSONEncoder returns an encoder producing human-readable
// two-space indented output.
func NewIndentedJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w, indent: true}
}

// Encode writes the documents as one JSON array. An empty document set
// encodes as [] rather than null.
func (e *JSONEncoder) Encode(docs []*java.Document) error {
	if docs == nil {
		docs = []*java.Document{}
	}

	var (
		text []byte
		err  error
	)
	if e.indent {
		text, err = json.MarshalIndent(docs, "", "  ")
	} else {
		text, err = json.Marshal(docs)
	}
	if err != nil {
		return err
	}

	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = e.w.Write([]byte("\n"))
	return err
}
