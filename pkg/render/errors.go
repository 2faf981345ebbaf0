package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const (
	errorListClass = "inform error"
	infoListClass  = "inform info"
)

// ErrorList renders every validation message as a <ul class="inform error">.
// Fields appear in sorted order and each field's messages in the order they
// were produced. It returns nil for a valid result.
func ErrorList(result *validation.Result) *markup.Node {
	if result == nil || result.IsValid() {
		return nil
	}
	var messages []string
	for _, id := range result.FieldsInError() {
		messages = append(messages, result.FieldErrors(id)...)
	}
	return messageList(errorListClass, messages)
}

// InfoList renders informational messages as a <ul class="inform info">.
func InfoList(messages ...string) *markup.Node {
	return messageList(infoListClass, normalizeMessages(messages))
}

func messageList(class string, messages []string) *markup.Node {
	if len(messages) == 0 {
		return nil
	}
	list := markup.New("ul", markup.A("class", class))
	for _, message := range messages {
		list.CreateChild("li", nil, markup.Text(message))
	}
	return list
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
