package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start a new paragraph of text.
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Br:         true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// skippedElements never contribute text.
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Noscript: true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
}

// BlockText returns the text under n with each block-level element on its
// own paragraph. Whitespace inside a paragraph is collapsed and paragraphs
// are separated by blank lines. A nil node yields "".
func BlockText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var (
		paragraphs []string
		current    strings.Builder
	)
	flush := func() {
		if text := strings.Join(strings.Fields(current.String()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(n)
	flush()

	return strings.Join(paragraphs, "\n\n")
}
