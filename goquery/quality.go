package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/newsextract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// boilerplateRoles are class or id fragments of page furniture.
var boilerplateRoles = []string{
	"advertisement",
	"ad-",
	"sidebar",
	"footer",
	"header",
	"navigation",
	"menu",
	"social",
	"share",
	"comment",
	"related",
	"recommended",
	"trending",
	"popular",
	"newsletter",
	"subscribe",
	"privacy",
	"cookie",
}

// boilerplatePhrases mark lines of extracted text that are calls to action
// or legal notices.
var boilerplatePhrases = []string{
	"click here",
	"read more",
	"share this",
	"subscribe",
	"newsletter",
	"follow us",
	"contact us",
	"privacy policy",
	"terms of service",
	"cookies",
	"advertisement",
}

// minLetterRatio is the share of letters a line needs to count as prose.
const minLetterRatio = 0.5

// inBoilerplate reports whether n sits in page furniture as far as g can
// tell: n itself or an ancestor up to g's anchor container (inclusive) has
// a class or id naming a boilerplate role. Page-wide groups look as far as
// <body>.
func (g SelectorGroup) inBoilerplate(n *html.Node) bool {
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if cur.DataAtom == atom.Body || cur.DataAtom == atom.Html {
			return false
		}
		if hasBoilerplateRole(cur) {
			return true
		}
		switch {
		case g.pageWide:
		case g.anchor == nil:
			return false
		case g.anchor.Match(cur):
			return false
		}
	}
	return false
}

func hasBoilerplateRole(n *html.Node) bool {
	var class, id string
	for _, a := range n.Attr {
		switch a.Key {
		case "class":
			class = strings.ToLower(a.Val)
		case "id":
			id = strings.ToLower(a.Val)
		}
	}
	if class == "" && id == "" {
		return false
	}
	return containsAny(class, boilerplateRoles) || containsAny(id, boilerplateRoles)
}

// acceptElementText applies the element-level text gates. Headings are
// exempt from the length gates so short section titles survive, but still
// face the exclusion terms.
func acceptElementText(tag, text string) bool {
	if text == "" {
		return false
	}
	if IsLikelyHeader(tag) {
		return !containsExcludeTerm(text)
	}
	if ShouldExcludeContent(text) {
		return false
	}
	return utf8.RuneCountInString(text) > newsextract.MinElementLength
}

// CleanContent removes boilerplate lines from extracted text. Lines are
// trimmed and runs of spaces collapsed; empty lines, lines under 10
// characters, lines with call-to-action phrases and lines that are mostly
// digits or punctuation are dropped. Surviving lines are joined with blank
// lines. CleanContent(CleanContent(s)) == CleanContent(s).
func CleanContent(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(collapseSpaces(line))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) < minMeaningfulLength {
			continue
		}
		if containsAny(strings.ToLower(line), boilerplatePhrases) {
			continue
		}
		if !mostlyLetters(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n\n")
}

// collapseSpaces replaces runs of two or more spaces with one space.
func collapseSpaces(s string) string {
	if !strings.Contains(s, "  ") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mostlyLetters(line string) bool {
	var letters, total int
	for _, r := range line {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters) >= float64(total)*minLetterRatio
}
