package profile

import (
	"fighterdata/lib/htmlutil"
	"slices"
	"strings"
)

// node is a hand-built element for tests that need shapes the fixture
// page does not have.
type node struct {
	tag      string
	classes  []string
	text     string
	href     string
	children []*node
}

func el(tag, class string, children ...*node) *node {
	return &node{tag: tag, classes: strings.Fields(class), children: children}
}

func text(tag, class, value string) *node {
	return &node{tag: tag, classes: strings.Fields(class), text: value}
}

func link(class, value, href string) *node {
	return &node{tag: "a", classes: strings.Fields(class), text: value, href: href}
}

func (n *node) FindByTagAndClass(tag, class string) []htmlutil.DocumentView {
	var found []htmlutil.DocumentView
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.children {
			if c.tag == tag && (class == "" || slices.Contains(c.classes, class)) {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

func (n *node) Text() string {
	if len(n.children) == 0 {
		return n.text
	}
	parts := []string{n.text}
	for _, c := range n.children {
		parts = append(parts, c.Text())
	}
	return strings.Join(parts, "\n")
}

func (n *node) LinkTarget() string {
	if n.tag == "a" {
		return n.href
	}
	for _, c := range n.children {
		if target := c.LinkTarget(); target != "" {
			return target
		}
	}
	return ""
}

type panicView struct{}

func (panicView) FindByTagAndClass(string, string) []htmlutil.DocumentView {
	panic("unexpected markup")
}

func (panicView) Text() string       { return "" }
func (panicView) LinkTarget() string { return "" }

func cell(value string) *node {
	return text("td", classHistoryCell, value)
}

// bout builds one history row with the cell layout of the live site.
func bout(result string, fighterCell *node, event, method, round string) *node {
	return el("tr", classHistoryRow,
		cell(result),
		fighterCell,
		cell("0\n0"),
		cell("12\n9"),
		cell("0\n1"),
		cell("0\n0"),
		cell(event),
		cell(method),
		cell(round),
		cell("5:00"),
	)
}

func fighterCell(names ...string) *node {
	c := el("td", classHistoryCell)
	for _, name := range names {
		c.children = append(c.children, link("b-link b-link_style_black", name, "http://ufcstats.com/fighter-details/x"))
	}
	return c
}

func historyDoc(rows ...*node) *node {
	return el("html", "",
		el("table", "b-fight-details__table",
			el("thead", "b-fight-details__table-head",
				el("tr", classHistoryRow, text("th", classHistoryCell, "W/L")),
			),
			el("tbody", classHistoryBody, rows...),
		),
	)
}
