package engine

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		res  GenerationResult
		want string
	}{
		{"record list", RecordList{{GeneratedText: "first"}, {GeneratedText: "second"}}, "first"},
		{"empty record list", RecordList{}, ""},
		{"structured", Structured{Content: "hello"}, "hello"},
		{"raw string", Raw("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.res); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

type oddResult struct{ n int }

func (oddResult) generationResult() {}

func TestExtractTextUnrecognizedShape(t *testing.T) {
	// Unknown shapes degrade to their string conversion instead of failing.
	got := ExtractText(oddResult{n: 42})
	if got == "" {
		t.Error("unrecognized shape should still produce a string")
	}
}
