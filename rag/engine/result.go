package engine

import "fmt"

// GenerationResult is the tagged union of result shapes a text-generation
// backend can hand back: a list of generation records, a structured object
// carrying a content field, or a plain string.
type GenerationResult interface {
	generationResult()
}

// Record is one entry of a record-list result.
type Record struct {
	GeneratedText string `json:"generated_text"`
}

// RecordList is a list-of-records result; the first record carries the answer.
type RecordList []Record

// Structured is a result object with an explicit content field.
type Structured struct {
	Content string
}

// Raw is a plain-string result.
type Raw string

func (RecordList) generationResult() {}
func (Structured) generationResult() {}
func (Raw) generationResult()        {}

// ExtractText normalizes any generation result into the answer string.
// Unrecognized shapes degrade to their string conversion instead of failing.
func ExtractText(res GenerationResult) string {
	switch r := res.(type) {
	case RecordList:
		if len(r) > 0 {
			return r[0].GeneratedText
		}
		return ""
	case Structured:
		return r.Content
	case Raw:
		return string(r)
	default:
		return fmt.Sprint(res)
	}
}
