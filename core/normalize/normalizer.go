// Package normalize holds the text clean-up routines shared by the site
// parsers. Every function here is pure.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// CleanFunc is one step of a string clean-up pipeline.
type CleanFunc func(string) string

// CleanString applies cleanFuncs to str in order.
func CleanString(str string, cleanFuncs ...CleanFunc) string {
	cleaned := str
	for _, clean := range cleanFuncs {
		cleaned = clean(cleaned)
	}
	return cleaned
}

var (
	lineBreakRegex = regexp.MustCompile(`\r\n|\r|\n`)
	breakTagRegex  = regexp.MustCompile(`(?i)<br\s*/?>|</br>`)
	anchorRegex    = regexp.MustCompile(`(?is)<a\s[^>]*?\bhref\s*=\s*"([^"]*)"[^>]*>(.*?)</a>`)
)

// CollapseWhitespace replaces every line-break sequence (CRLF, CR, LF) with
// a single space. Other spacing is left alone.
func CollapseWhitespace(s string) string {
	return lineBreakRegex.ReplaceAllString(s, " ")
}

// BreakTagsToNewlines replaces <br>, <br/>, <br /> and </br> with "\n".
func BreakTagsToNewlines(s string) string {
	return breakTagRegex.ReplaceAllString(s, "\n")
}

// HyperlinksToMarkdown rewrites every <a href="A">T</a> into [T](A).
func HyperlinksToMarkdown(s string) string {
	return anchorRegex.ReplaceAllString(s, "[$2]($1)")
}

// StripLabelPrefix trims s and, when it starts with label, drops the label
// and trims again.
func StripLabelPrefix(s, label string) string {
	s = strings.TrimSpace(s)
	if label != "" && strings.HasPrefix(s, label) {
		s = strings.TrimSpace(s[len(label):])
	}
	return s
}

// RemovePrefix is StripLabelPrefix as a CleanFunc.
func RemovePrefix(label string) CleanFunc {
	return func(s string) string {
		return StripLabelPrefix(s, label)
	}
}

// FirstWords keeps the first n whitespace-separated tokens of s, joined by
// single spaces.
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if n < 0 {
		n = 0
	}
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// FirstWordsFunc is FirstWords as a CleanFunc.
func FirstWordsFunc(n int) CleanFunc {
	return func(s string) string {
		return FirstWords(s, n)
	}
}

// StripTags removes all markup from an HTML fragment and decodes entities.
// Text, including newlines, is kept as it appears in the fragment.
func StripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Reading from a strings.Reader cannot fail.
		return s
	}
	return doc.Find("body").Text()
}

// FragmentToMarkdown converts an HTML fragment into Markdown.
func FragmentToMarkdown(fragment string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
