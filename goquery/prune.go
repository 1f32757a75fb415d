package goquery

import (
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PrunedClone returns a deep copy of root without subtrees whose class or
// id names a boilerplate role, such as advertisement or share blocks.
// Elements that wrap an <article> or <main> are kept, so a page-wide
// layout class cannot remove the story itself. root is not modified.
func PrunedClone(root *html.Node) *html.Node {
	clone := dom.Clone(root, true)
	pruneBoilerplate(clone)
	return clone
}

func pruneBoilerplate(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isPrunable(c) {
			n.RemoveChild(c)
		} else {
			pruneBoilerplate(c)
		}
		c = next
	}
}

func isPrunable(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom == atom.Html || n.DataAtom == atom.Body {
		return false
	}
	return hasBoilerplateRole(n) && !wrapsLandmark(n)
}

func wrapsLandmark(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Article || c.DataAtom == atom.Main || wrapsLandmark(c) {
			return true
		}
	}
	return false
}
