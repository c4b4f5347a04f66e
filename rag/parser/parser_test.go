package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegistryExtensions(t *testing.T) {
	reg := DefaultRegistry()
	want := []string{"htm", "html", "markdown", "md", "txt"}
	if got := reg.Extensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestRegistryUnknownExtension(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.ParseFile("notes.pdf"); err == nil {
		t.Error("expected error for unregistered extension")
	}
}

func TestTxtParser(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "intro.txt", "LangChain is a framework for building LLM applications.")

	doc, err := DefaultRegistry().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if doc.Content != "LangChain is a framework for building LLM applications." {
		t.Errorf("content = %q", doc.Content)
	}
	if doc.Title == "" {
		t.Error("expected a title")
	}
}

func TestMarkdownParser(t *testing.T) {
	dir := t.TempDir()
	content := `---
title: ignored frontmatter
---
# Getting Started

See [the docs](https://example.com) for **details**.

![diagram](arch.png)
`
	path := writeFile(t, dir, "guide.md", content)

	doc, err := DefaultRegistry().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if strings.Contains(doc.Content, "---") {
		t.Error("frontmatter not stripped")
	}
	if strings.Contains(doc.Content, "https://example.com") {
		t.Error("link target not stripped")
	}
	if !strings.Contains(doc.Content, "the docs") {
		t.Error("link text lost")
	}
	if strings.Contains(doc.Content, "**") {
		t.Error("emphasis markers not stripped")
	}
	if doc.Title != "Getting Started" {
		t.Errorf("title = %q, want Getting Started", doc.Title)
	}
}

func TestHTMLParser(t *testing.T) {
	dir := t.TempDir()
	content := `<html>
<head><title>API Reference</title><style>body { color: red }</style></head>
<body>
<script>alert("nope")</script>
<h1>Endpoints</h1>
<p>POST /query answers a question.</p>
</body>
</html>`
	path := writeFile(t, dir, "api.html", content)

	doc, err := DefaultRegistry().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if doc.Title != "API Reference" {
		t.Errorf("title = %q, want API Reference", doc.Title)
	}
	if strings.Contains(doc.Content, "alert") {
		t.Error("script content not removed")
	}
	if strings.Contains(doc.Content, "color: red") {
		t.Error("style content not removed")
	}
	if !strings.Contains(doc.Content, "POST /query answers a question.") {
		t.Errorf("body text lost, content = %q", doc.Content)
	}
}
