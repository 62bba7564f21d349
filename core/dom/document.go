// Package dom is the traversable document tree handed to site parsers.
// It wraps goquery so parsers can look elements up by id or class, walk
// direct children, and read either an element's text or its inner markup.
//
// Lookups never panic: methods on a nil *Element return nil or "", so a
// parser can chain lookups and check for nil once at the end.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Element is a single element node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Parse reads an HTML page into a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromNode(root), nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an already parsed node tree.
func FromNode(root *html.Node) *Document {
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// Root returns the document's top-level element.
func (d *Document) Root() *Element {
	if d == nil || d.doc == nil {
		return nil
	}
	return wrap(d.doc.Selection)
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	if d == nil || d.doc == nil || id == "" {
		return nil
	}
	m, err := cascadia.Compile(`[id="` + cssEscape(id) + `"]`)
	if err != nil {
		return nil
	}
	return wrap(d.doc.FindMatcher(m).First())
}

// Find returns the descendants of the element matching a CSS selector.
// An invalid selector matches nothing.
func (e *Element) Find(selector string) []*Element {
	if e == nil {
		return nil
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return wrapEach(e.sel.FindMatcher(m))
}

// ByClass returns the descendants carrying the given class, in document order.
func (e *Element) ByClass(class string) []*Element {
	if class == "" {
		return nil
	}
	return e.Find("." + cssEscape(class))
}

// FirstByClass returns the first descendant carrying the class, or nil.
func (e *Element) FirstByClass(class string) *Element {
	return e.NthByClass(class, 0)
}

// NthByClass returns the i-th (zero-based) descendant carrying the class, or nil.
func (e *Element) NthByClass(class string, i int) *Element {
	all := e.ByClass(class)
	if i < 0 || i >= len(all) {
		return nil
	}
	return all[i]
}

// Children returns the direct element children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return wrapEach(e.sel.Children())
}

// Child returns the i-th direct element child, or nil.
func (e *Element) Child(i int) *Element {
	children := e.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// Text returns the combined text content of the element and its descendants.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.sel.Text()
}

// InnerHTML returns the element's inner markup. It reports false for a nil
// element or when the markup cannot be rendered.
func (e *Element) InnerHTML() (string, bool) {
	if e == nil {
		return "", false
	}
	s, err := e.sel.Html()
	if err != nil {
		return "", false
	}
	return s, true
}

func wrap(sel *goquery.Selection) *Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First()}
}

func wrapEach(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

// cssEscape escapes the characters that would otherwise end an identifier
// or attribute value in a selector.
func cssEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r >= 0x80:
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
