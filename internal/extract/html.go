package extract

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Selectors locate the detail-view regions in the rendered markup.
type Selectors struct {
	Heading     string
	Secondary   string
	Fragments   string
	Description string
}

// HTMLView is a DetailView over a static HTML snapshot of a detail page.
type HTMLView struct {
	doc *goquery.Document
	sel Selectors
}

func NewHTMLView(r io.Reader, sel Selectors) (*HTMLView, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail html: %w", err)
	}
	return &HTMLView{doc: doc, sel: sel}, nil
}

func (v *HTMLView) Heading() (string, error) {
	return v.doc.Find(v.sel.Heading).First().Text(), nil
}

func (v *HTMLView) SecondaryFields() ([]string, error) {
	return texts(v.doc.Find(v.sel.Secondary)), nil
}

func (v *HTMLView) LabeledFragments() ([]string, error) {
	return texts(v.doc.Find(v.sel.Fragments)), nil
}

func (v *HTMLView) Description() (string, error) {
	block := v.doc.Find(v.sel.Description).First()
	if block.Length() == 0 {
		return "", nil
	}
	return InnerText(block), nil
}

func texts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el.Text())
	})
	return out
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "dd": true,
	"div": true, "dl": true, "dt": true, "footer": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

// InnerText approximates a browser's innerText: whitespace collapsed inside text runs,
// line breaks at <br> and block boundaries, blank lines dropped.
func InnerText(s *goquery.Selection) string {
	var b strings.Builder
	renderText(s, &b)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func renderText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch name := goquery.NodeName(c); {
		case name == "#text":
			writeCollapsed(b, c.Text())
		case name == "br":
			b.WriteString("\n")
		case name == "script" || name == "style":
		case blockTags[name]:
			b.WriteString("\n")
			renderText(c, b)
			b.WriteString("\n")
		default:
			renderText(c, b)
		}
	})
}

// writeCollapsed writes t with whitespace runs folded to single spaces.
// Line breaks inside a text node are layout, not content.
func writeCollapsed(b *strings.Builder, t string) {
	if t == "" {
		return
	}
	if unicode.IsSpace(rune(t[0])) {
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(strings.Fields(t), " "))
	if unicode.IsSpace(rune(t[len(t)-1])) {
		b.WriteString(" ")
	}
}
