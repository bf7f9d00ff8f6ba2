package utils

import (
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy allow-lists the tags the rich-text editor emits plus the
// inline SVG icons used on service pages. Everything else is stripped.
var contentPolicy = newContentPolicy()

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"a", "abbr", "b", "blockquote", "br", "code", "div", "em",
		"h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img",
		"li", "ol", "p", "pre", "span", "strong", "table", "tbody",
		"td", "th", "thead", "tr", "u", "ul", "figure", "figcaption",
		"sup", "sub", "small",
		"svg", "path", "circle", "polyline", "line", "rect", "g",
	)

	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height", "loading").OnElements("img")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("class").OnElements("div", "span", "p", "figure")

	p.AllowAttrs("width", "height", "viewbox", "fill", "stroke", "stroke-width", "xmlns").OnElements("svg")
	p.AllowAttrs("d", "fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin").OnElements("path")
	p.AllowAttrs("cx", "cy", "r", "fill", "stroke", "stroke-width").OnElements("circle")
	p.AllowAttrs("points", "fill", "stroke", "stroke-width").OnElements("polyline")
	p.AllowAttrs("x1", "y1", "x2", "y2", "stroke", "stroke-width").OnElements("line")
	p.AllowAttrs("x", "y", "width", "height", "rx", "ry", "fill", "stroke").OnElements("rect")
	p.AllowAttrs("transform", "fill", "stroke").OnElements("g")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")

	return p
}

// SanitizeHTML cleans editor-supplied HTML so it is safe to render verbatim.
func SanitizeHTML(raw string) template.HTML {
	if raw == "" {
		return ""
	}
	return template.HTML(contentPolicy.Sanitize(raw))
}
