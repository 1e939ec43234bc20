package report

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
	textSanitizer *bluemonday.Policy
)

func init() {
	// Titles are plain text on both platforms: only code spans are rendered,
	// emphasis, links and raw HTML stay literal.
	mdRenderer = goldmark.New(goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(util.Prioritized(parser.NewCodeSpanParser(), 100)),
	)))

	htmlSanitizer = bluemonday.UGCPolicy()
	textSanitizer = bluemonday.StrictPolicy()
}

// renderTitle renders a request title as sanitized inline HTML where only
// backtick code spans become markup. Titles that
// do not render to a single paragraph fall back to escaped text.
func renderTitle(title string) string {
	if title == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(title), &buf); err != nil {
		return escapeText(title)
	}

	out := strings.TrimSpace(htmlSanitizer.Sanitize(buf.String()))
	inner, ok := strings.CutPrefix(out, "<p>")
	if !ok {
		return escapeText(title)
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return escapeText(title)
	}
	return inner
}

// escapeText strips any markup from s and escapes it for an HTML body.
func escapeText(s string) string {
	return textSanitizer.Sanitize(s)
}
