package editor

import (
	"strings"

	"github.com/russross/blackfriday"
)

// Markdown is a widget whose source is Markdown text. Its serialized
// content is the HTML rendering of the source. The page uses Quill, this
// widget feeds tools that write posts without a browser, like cmd/seed
type Markdown struct {
	source string
}

func NewMarkdown(source string) *Markdown {
	return &Markdown{source: source}
}

func (m *Markdown) Contents() string {
	if strings.TrimSpace(m.source) == "" {
		return ""
	}
	return string(blackfriday.MarkdownCommon([]byte(m.source)))
}

func (m *Markdown) SetContents(source string) {
	m.source = source
}

// Source returns Markdown as it was written
func (m *Markdown) Source() string {
	return m.source
}
