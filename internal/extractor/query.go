
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a single element of a parsed document. The zero value matches
// nothing and yields empty text.
type Node struct {
	sel *goquery.Selection
}

func newNode(sel *goquery.Selection) Node {
	return Node{sel: sel}
}

// First returns the first descendant matching selector in document order.
func (n Node) First(selector string) (Node, bool) {
	if n.sel == nil {
		return Node{}, false
	}
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return Node{}, false
	}
	return newNode(found), true
}

// All returns every descendant matching selector in document order.
func (n Node) All(selector string) []Node {
	if n.sel == nil {
		return nil
	}
	found := n.sel.Find(selector)
	out := make([]Node, 0, found.Length())
	found.Each(func(i int, s *goquery.Selection) {
		out = append(out, newNode(s))
	})
	return out
}

// Text returns the combined text of the node and its descendants with
// leading and trailing whitespace removed.
func (n Node) Text() string {
	if n.sel == nil {
		return ""
	}
	return strings.TrimSpace(n.sel.Text())
}

// FirstText is First followed by Text; ok is false when nothing matched.
func (n Node) FirstText(selector string) (string, bool) {
	found, ok := n.First(selector)
	if !ok {
		return "", false
	}
	return found.Text(), true
}
