package engine

import "strings"

const promptInstruction = "Answer the question based on the context below:"

// BuildPrompt assembles the generation prompt: instruction line, blank line,
// retrieved passages in rank order separated by blank lines, blank line,
// question, answer cue.
func BuildPrompt(contexts []string, question string) string {
	var b strings.Builder
	b.WriteString(promptInstruction)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}
