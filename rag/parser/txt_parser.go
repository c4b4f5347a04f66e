package parser

import (
	"fmt"
	"os"
)

// TxtParser handles plain text files.
type TxtParser struct{}

// NewTxtParser creates a plain text parser.
func NewTxtParser() *TxtParser {
	return &TxtParser{}
}

// ParseFile reads a plain text file verbatim.
func (p *TxtParser) ParseFile(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	content := string(data)
	return &Document{
		Content: content,
		Title:   ExtractTitle(content, filePath),
	}, nil
}

// FileType returns the file type this parser handles.
func (p *TxtParser) FileType() FileType {
	return FileTypeTXT
}
