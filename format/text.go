package format

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// TextEncoder writes a document as text: a value with a String method as
// that string, any other slice one element per line.
type TextEncoder struct {
	w   io.Writer
	doc any
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(doc any) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if _, ok := e.doc.(fmt.Stringer); !ok {
		if v := reflect.ValueOf(e.doc); v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(&sb, v.Index(i).Interface())
			}
			return []byte(sb.String()), nil
		}
	}
	fmt.Fprintln(&sb, e.doc)
	return []byte(sb.String()), nil
}
