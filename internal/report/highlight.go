package report

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight colors src for a terminal, picking the lexer from filename.
// Unknown file types and formatter errors return src unchanged.
func Highlight(src, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}

// WriteDocument prints a context document, highlighted unless noColor is set.
// format is "yaml" or "json".
func WriteDocument(w io.Writer, doc, format string, noColor bool) error {
	if !noColor {
		doc = Highlight(doc, "context."+format)
	}
	_, err := io.WriteString(w, doc)
	return err
}
