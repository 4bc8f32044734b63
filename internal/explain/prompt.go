package explain

import "fmt"

// ContextPlaceholder fills the context slot when the caller sent none
const ContextPlaceholder = "No additional context provided."

const systemPrompt = "You are a helpful explainer."

const promptTemplate = `
Explain ONLY the selected text below in simple terms.
Use the context for disambiguation only, not for summarizing unrelated content.

Selected text:
%s

Context:
%s

Be concise (1-2 sentences). Explain only what is selected.
`

// BuildPrompt renders the user message for a selection and its surrounding context.
func BuildPrompt(text, context string) string {
	if context == "" {
		context = ContextPlaceholder
	}
	return fmt.Sprintf(promptTemplate, text, context)
}
