package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<ul>
  <li class="item">Height: 6' 4"</li>
  <li class="item other">Reach:
     84"</li>
  <li>no class</li>
</ul>
<p class="bout">
  <a class="b-link" href=" http://example.com/fighter-details/1 ">Jon   Jones</a>
  <a class="b-link" href="http://example.com/fighter-details/2">Ciryl Gane</a>
</p>
</body></html>`

func TestDocumentView(t *testing.T) {
	doc, err := ParseView(strings.NewReader(fixture))
	require.NoError(t, err)

	items := doc.FindByTagAndClass("li", "item")
	require.Len(t, items, 2)
	require.Equal(t, `Height: 6' 4"`, strings.TrimSpace(items[0].Text()))
	require.Equal(t, `Reach: 84"`, NormalizeText(items[1].Text()))

	require.Len(t, doc.FindByTagAndClass("li", ""), 3)
	require.Empty(t, doc.FindByTagAndClass("li", "missing"))

	bout := doc.FindByTagAndClass("p", "bout")
	require.Len(t, bout, 1)
	require.Equal(t, "http://example.com/fighter-details/1", bout[0].LinkTarget())

	links := bout[0].FindByTagAndClass("a", "b-link")
	require.Len(t, links, 2)
	require.Equal(t, "http://example.com/fighter-details/2", links[1].LinkTarget())
	require.Equal(t, "", items[0].LinkTarget())
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	anchors := GetAnchors(doc.Find("a.b-link"))
	diff := cmp.Diff([]Anchor{
		{Name: "Jon Jones", Href: "http://example.com/fighter-details/1"},
		{Name: "Ciryl Gane", Href: "http://example.com/fighter-details/2"},
	}, anchors)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestNormalizeText(t *testing.T) {
	require.Equal(t, "a b c", NormalizeText("  a \n\t b   c\n"))
	require.Equal(t, "", NormalizeText(" \n "))
}
