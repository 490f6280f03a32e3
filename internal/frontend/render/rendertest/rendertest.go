// Package rendertest reads rendered post lists back for assertions.
package rendertest

import (
	"strings"

	"golang.org/x/net/html"
)

// Article is what a reader sees of one rendered post
type Article struct {
	Title   string
	Author  string
	Date    string
	Content string
}

// Articles parses markup and returns rendered posts in document order
func Articles(markup string) ([]Article, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var res []Article
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "article" && hasClass(n, "post") {
			res = append(res, article(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return res, nil
}

func article(n *html.Node) Article {
	var a Article
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h2":
				a.Title = text(n)
			case hasClass(n, "author"):
				a.Author = text(n)
			case hasClass(n, "date"):
				a.Date = text(n)
			case hasClass(n, "post-content"):
				a.Content = strings.TrimSpace(inner(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return a
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func inner(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}
