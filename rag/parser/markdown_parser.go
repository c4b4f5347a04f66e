package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	frontmatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	emphasisRe    = regexp.MustCompile(`(\*{1,2}|_{1,2})([^*_]+)(\*{1,2}|_{1,2})`)
)

// MarkdownParser handles markdown files. Formatting that would only add
// noise to the embedding (links, images, emphasis markers, frontmatter) is
// stripped; headings and code blocks are kept as text.
type MarkdownParser struct{}

// NewMarkdownParser creates a markdown parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// ParseFile reads and cleans a markdown file.
func (p *MarkdownParser) ParseFile(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content := frontmatterRe.ReplaceAllString(string(data), "")
	title := ExtractTitle(content, filePath)

	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = emphasisRe.ReplaceAllString(content, "$2")
	content = strings.TrimSpace(content)

	return &Document{Content: content, Title: title}, nil
}

// FileType returns the file type this parser handles.
func (p *MarkdownParser) FileType() FileType {
	return FileTypeMD
}
