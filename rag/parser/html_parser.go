package parser

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// HTMLParser handles HTML files. The document is parsed with goquery to drop
// script/style/nav noise and pick up the title, then the body is converted to
// markdown-ish plain text so headings and lists survive chunking.
type HTMLParser struct {
	converter *md.Converter
}

// NewHTMLParser creates an HTML parser.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{converter: md.NewConverter("", true, nil)}
}

// ParseFile reads and parses an HTML file.
func (p *HTMLParser) ParseFile(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find("script, style, noscript, nav").Remove()

	body, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(body) == "" {
		body = string(data)
	}

	content, err := p.converter.ConvertString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	content = collapseBlankLines(content)

	if title == "" {
		title = ExtractTitle(content, filePath)
	}

	return &Document{Content: content, Title: title}, nil
}

// FileType returns the file type this parser handles.
func (p *HTMLParser) FileType() FileType {
	return FileTypeHTML
}

// collapseBlankLines trims trailing space and squeezes runs of blank lines
// down to one.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if !blank {
				out = append(out, line)
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
