package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocumentView is the part of a parsed HTML document that extractors are
// allowed to see. Keeping it this small lets extraction logic run against
// hand-built fixtures as well as real pages.
type DocumentView interface {
	// FindByTagAndClass returns every descendant with the given tag name and
	// class, in document order. An empty class matches any element of tag.
	FindByTagAndClass(tag, class string) []DocumentView
	// Text is the concatenated text content of the element and its descendants.
	Text() string
	// LinkTarget is the href of the element if it is a link, otherwise the
	// href of its first descendant link, otherwise "".
	LinkTarget() string
}

type selectionView struct {
	sel *goquery.Selection
}

// NewView wraps a goquery selection.
func NewView(sel *goquery.Selection) DocumentView {
	return selectionView{sel: sel}
}

// ParseView parses an HTML document into a DocumentView.
func ParseView(r io.Reader) (DocumentView, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewView(doc.Selection), nil
}

func (v selectionView) FindByTagAndClass(tag, class string) []DocumentView {
	selector := tag
	if class != "" {
		selector += "." + class
	}
	found := v.sel.Find(selector)

	views := make([]DocumentView, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		views = append(views, selectionView{sel: s})
	})
	return views
}

func (v selectionView) Text() string {
	return v.sel.Text()
}

func (v selectionView) LinkTarget() string {
	if goquery.NodeName(v.sel) == "a" {
		return strings.TrimSpace(v.sel.AttrOr("href", ""))
	}
	return strings.TrimSpace(v.sel.Find("a[href]").First().AttrOr("href", ""))
}
