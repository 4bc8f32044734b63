package inference

import (
	"encoding/json"
	"strings"
)

// CompletionKind tags how much of the expected response shape was present.
type CompletionKind int

const (
	CompletionOK CompletionKind = iota
	CompletionMissingChoices
	CompletionMissingContent
)

func (kind CompletionKind) String() string {
	switch kind {
	case CompletionOK:
		return "ok"
	case CompletionMissingChoices:
		return "missing_choices"
	case CompletionMissingContent:
		return "missing_content"
	default:
		return "unknown"
	}
}

// Completion is the decoded result of one chat completion call.
// Content is only set when Kind is CompletionOK, and it is already trimmed.
type Completion struct {
	Kind       CompletionKind
	Content    string
	StatusCode int
	Raw        string
}

type completionBody struct {
	Choices json.RawMessage `json:"choices"`
}

type choiceBody struct {
	Message json.RawMessage `json:"message"`
}

type messageBody struct {
	Content json.RawMessage `json:"content"`
}

// ParseCompletion decodes a chat completion body of the form
// {"choices": [{"message": {"content": "..."}}]} without trusting any level of it.
// Any body, including a non-JSON one, yields a Completion.
func ParseCompletion(body []byte) Completion {
	raw := string(body)
	missingChoices := Completion{Kind: CompletionMissingChoices, Raw: raw}
	missingContent := Completion{Kind: CompletionMissingContent, Raw: raw}

	var envelope completionBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return missingChoices
	}
	if len(envelope.Choices) == 0 {
		return missingChoices
	}
	var choices []json.RawMessage
	if err := json.Unmarshal(envelope.Choices, &choices); err != nil || len(choices) == 0 {
		return missingChoices
	}

	var choice choiceBody
	if err := json.Unmarshal(choices[0], &choice); err != nil || len(choice.Message) == 0 {
		return missingContent
	}
	var message messageBody
	if err := json.Unmarshal(choice.Message, &message); err != nil || len(message.Content) == 0 {
		return missingContent
	}
	var content string
	if err := json.Unmarshal(message.Content, &content); err != nil {
		return missingContent
	}

	// a whitespace-only answer carries nothing to show
	content = strings.TrimSpace(content)
	if content == "" {
		return missingContent
	}
	return Completion{Kind: CompletionOK, Content: content, Raw: raw}
}
