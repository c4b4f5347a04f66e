// Package parser turns document files into plain text ready for chunking
// and embedding.
package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileType represents the type of a document file.
type FileType string

const (
	FileTypeTXT     FileType = "txt"
	FileTypeMD      FileType = "md"
	FileTypeHTML    FileType = "html"
	FileTypeUnknown FileType = "unknown"
)

// Document is a parsed document: plain text content plus a best-effort title.
type Document struct {
	Content string
	Title   string
}

// Parser extracts plain text from one file format.
type Parser interface {
	// ParseFile reads and parses the document at filePath.
	ParseFile(filePath string) (*Document, error)

	// FileType returns the file type this parser handles.
	FileType() FileType
}

// Registry maps file types to parsers and decides which files are eligible
// for indexing.
type Registry struct {
	parsers map[FileType]Parser
	exts    map[string]FileType
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[FileType]Parser),
		exts:    make(map[string]FileType),
	}
}

// Register adds a parser and the extensions it claims.
func (r *Registry) Register(p Parser, exts ...string) {
	r.parsers[p.FileType()] = p
	for _, ext := range exts {
		r.exts[strings.ToLower(ext)] = p.FileType()
	}
}

// Extensions returns every registered file extension, sorted, without dots.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.exts))
	for ext := range r.exts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseFile parses a file using the parser registered for its extension.
func (r *Registry) ParseFile(filePath string) (*Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	ft, ok := r.exts[ext]
	if !ok {
		return nil, fmt.Errorf("no parser registered for file: %s", filePath)
	}
	return r.parsers[ft].ParseFile(filePath)
}

// DefaultRegistry returns a registry with the standard parsers registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(NewTxtParser(), "txt")
	reg.Register(NewMarkdownParser(), "md", "markdown")
	reg.Register(NewHTMLParser(), "html", "htm")
	return reg
}

// ExtractTitle picks a title from content: the first short non-empty line,
// falling back to the file name.
func ExtractTitle(content, filePath string) string {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line != "" {
			if len(line) < 100 {
				return line
			}
			break
		}
	}
	return filepath.Base(filePath)
}
