// Package markdown renders the line-based markup used in assignment
// descriptions. Only three prefixes are recognised: "# ", "## " and "- ".
package markdown

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Kind identifies how a description line is rendered.
type Kind string

const (
	KindHeading1  Kind = "h1"
	KindHeading2  Kind = "h2"
	KindListItem  Kind = "li"
	KindBreak     Kind = "br"
	KindParagraph Kind = "p"
)

// Block is one rendered line of a description.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "ul", "li", "p", "br")
	return p
}

// Parse splits content into blocks, one per line.
func Parse(content string) []Block {
	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Kind: KindHeading1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: KindHeading2, Text: line[3:]})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, Block{Kind: KindListItem, Text: line[2:]})
		case strings.TrimSpace(line) == "":
			blocks = append(blocks, Block{Kind: KindBreak})
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Text: line})
		}
	}

	return blocks
}

// RenderHTML renders content to sanitized HTML. Consecutive list items share
// one <ul>.
func RenderHTML(content string) template.HTML {
	var b strings.Builder
	inList := false

	for _, block := range Parse(content) {
		if block.Kind != KindListItem && inList {
			b.WriteString("</ul>")
			inList = false
		}

		text := html.EscapeString(block.Text)
		switch block.Kind {
		case KindHeading1:
			b.WriteString("<h1>" + text + "</h1>")
		case KindHeading2:
			b.WriteString("<h2>" + text + "</h2>")
		case KindListItem:
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			b.WriteString("<li>" + text + "</li>")
		case KindBreak:
			b.WriteString("<br>")
		default:
			b.WriteString("<p>" + text + "</p>")
		}
	}
	if inList {
		b.WriteString("</ul>")
	}

	return template.HTML(policy.Sanitize(b.String()))
}
