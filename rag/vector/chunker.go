package vector

import "fmt"

// Segment is a contiguous slice of a source document. Segments are the unit
// of embedding and retrieval: they are what gets stored in the index and what
// comes back from a search.
type Segment struct {
	Text     string
	Source   string
	Position int
}

// Split slices text into segments of at most maxLen runes, advancing by
// maxLen-overlap each step so that every pair of consecutive segments shares
// exactly overlap runes. The final segment may be shorter than maxLen; a
// document shorter than maxLen yields exactly one segment. Pure function.
func Split(text, source string, maxLen, overlap int) ([]Segment, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", maxLen)
	}
	if overlap < 0 || overlap >= maxLen {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", maxLen, overlap)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := maxLen - overlap
	var segments []Segment
	for start, pos := 0, 0; start < len(runes); start, pos = start+step, pos+1 {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, Segment{
			Text:     string(runes[start:end]),
			Source:   source,
			Position: pos,
		})
		if end == len(runes) {
			break
		}
	}

	return segments, nil
}
