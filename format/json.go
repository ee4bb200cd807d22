package format

import (
	"io"

	gojson "github.com/goccy/go-json"
)

type JSONEncoder struct {
	w   io.Writer
	doc any
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc any) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := gojson.MarshalIndent(e.doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
