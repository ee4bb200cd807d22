package format

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

var (
	headerColor = color.New(color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	sourceColor = color.New(color.FgCyan)
)

// Diagnostic writes err as reported by parse.Describe for the input src
// named name. With colored set the position is bold, the source line cyan
// and the markers red, whatever the terminal.
func Diagnostic[T element.Element](w io.Writer, name string, src []T, err error, colored bool) error {
	text := parse.Describe(name, src, err)
	if colored {
		text = colorize(text)
	}
	_, werr := io.WriteString(w, text+"\n")
	return werr
}

func colorize(text string) string {
	for _, c := range []*color.Color{headerColor, errorColor, sourceColor} {
		c.EnableColor()
	}
	lines := strings.Split(text, "\n")
	if pos, msg, ok := strings.Cut(lines[0], ": "); ok {
		lines[0] = headerColor.Sprint(pos+":") + " " + errorColor.Sprint("error:") + " " + msg
	}
	if len(lines) == 3 {
		lines[1] = sourceColor.Sprint(lines[1])
		lines[2] = errorColor.Sprint(lines[2])
	}
	return strings.Join(lines, "\n")
}
