package vector

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Text: "alpha", Source: "a.txt", Position: 0, Vector: []float32{1, 0, 0}},
		{Text: "beta", Source: "a.txt", Position: 1, Vector: []float32{0, 1, 0}},
		{Text: "gamma", Source: "b.txt", Position: 0, Vector: []float32{0.9, 0.1, 0}},
		{Text: "delta", Source: "b.txt", Position: 1, Vector: []float32{0, 0, 1}},
	}
}

func TestSearchRanking(t *testing.T) {
	ix, err := BuildIndex("test-model", testEntries())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	results, err := ix.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Text != "alpha" {
		t.Errorf("top result = %q, want alpha", results[0].Text)
	}
	if results[1].Text != "gamma" {
		t.Errorf("second result = %q, want gamma", results[1].Text)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %f < %f", results[0].Score, results[1].Score)
	}
}

func TestSearchBounds(t *testing.T) {
	ix, err := BuildIndex("test-model", testEntries())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	results, err := ix.Search([]float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != ix.Len() {
		t.Errorf("k beyond index size: got %d results, want %d", len(results), ix.Len())
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
	}

	results, err = ix.Search([]float32{1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("k=0: got %d results, want 0", len(results))
	}
}

func TestSearchStableTies(t *testing.T) {
	entries := []Entry{
		{Text: "first", Source: "a.txt", Position: 0, Vector: []float32{1, 0}},
		{Text: "second", Source: "a.txt", Position: 1, Vector: []float32{1, 0}},
		{Text: "third", Source: "a.txt", Position: 2, Vector: []float32{1, 0}},
	}
	ix, err := BuildIndex("test-model", entries)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	results, err := ix.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if results[i].Text != w {
			t.Errorf("tied result %d = %q, want %q (insertion order)", i, results[i].Text, w)
		}
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	ix, err := BuildIndex("test-model", testEntries())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if _, err := ix.Search([]float32{1, 0}, 1); err == nil {
		t.Error("expected error for query dimension mismatch")
	}
}

func TestBuildIndexValidation(t *testing.T) {
	if _, err := BuildIndex("m", nil); err == nil {
		t.Error("expected error for zero entries")
	}
	mixed := []Entry{
		{Text: "a", Vector: []float32{1, 0}},
		{Text: "b", Vector: []float32{1, 0, 0}},
	}
	if _, err := BuildIndex("m", mixed); err == nil {
		t.Error("expected error for mixed dimensions")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store", "index.json")

	ix, err := BuildIndex("test-model", testEntries())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if loaded.Dimension() != ix.Dimension() {
		t.Errorf("dimension = %d, want %d", loaded.Dimension(), ix.Dimension())
	}
	if loaded.Model() != "test-model" {
		t.Errorf("model = %q, want test-model", loaded.Model())
	}

	queries := [][]float32{
		{1, 0, 0},
		{0.2, 0.9, 0.1},
		{0, 0, 1},
	}
	for _, q := range queries {
		want, err := ix.Search(q, 4)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		got, err := loaded.Search(q, 4)
		if err != nil {
			t.Fatalf("Search() after load error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("search results differ after round trip for query %v", q)
		}
	}
}

func TestLoadIndexNotFound(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("error = %v, want ErrIndexNotFound", err)
	}
}

func TestLoadIndexCorrupt(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"not json", "definitely not json{{{"},
		{"wrong version", `{"version": 99, "dimension": 3, "entries": [{"text":"a","vector":[1,0,0]}]}`},
		{"no entries", `{"version": 1, "dimension": 3, "entries": []}`},
		{"bad dimension", `{"version": 1, "dimension": 0, "entries": [{"text":"a","vector":[]}]}`},
		{"entry mismatch", `{"version": 1, "dimension": 3, "entries": [{"text":"a","vector":[1,0]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadIndex(path); !errors.Is(err, ErrIndexCorrupt) {
				t.Errorf("error = %v, want ErrIndexCorrupt", err)
			}
		})
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")

	first, err := BuildIndex("m", []Entry{{Text: "old", Vector: []float32{1, 0}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Save(path); err != nil {
		t.Fatal(err)
	}

	second, err := BuildIndex("m", []Entry{{Text: "new", Vector: []float32{0, 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	results, err := loaded.Search([]float32{0, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Text != "new" {
		t.Errorf("loaded entry = %q, want the rewritten index", results[0].Text)
	}

	// No temp files left behind.
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("expected only the index file in %s, found %d files", dir, len(files))
	}
}
