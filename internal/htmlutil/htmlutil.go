// Package htmlutil reads text out of parsed html the way the catalog needs it.
package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StrippedText trims every text node under node and joins the non-empty pieces
// without a separator. Script and style contents are not text.
func StrippedText(node *html.Node) string {
	var out strings.Builder
	strippedTextRecursive(node, &out)
	return out.String()
}

func strippedTextRecursive(node *html.Node, out *strings.Builder) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		out.WriteString(strings.TrimSpace(node.Data))
		return
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		strippedTextRecursive(child, out)
	}
}

// Lookup returns the first node under root matching selector. The boolean is
// false when nothing matched, callers must decide on their own default.
func Lookup(root *goquery.Selection, selector string) (*goquery.Selection, bool) {
	sel := root.Find(selector).First()
	return sel, sel.Length() > 0
}

// Texts returns the stripped text of every node in sel, in document order.
func Texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, StrippedText(n))
	}
	return out
}
