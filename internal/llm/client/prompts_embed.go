package client

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

var promptTemplates = template.Must(template.ParseFS(embeddedPrompts, "prompts/*.txt"))

// PromptData is the input every prompt template is rendered with.
type PromptData struct {
	Name     string
	Idea     string
	Question string
}

// Prompt renders the named template (file name without extension).
func Prompt(name string, data PromptData) (string, error) {
	var b strings.Builder
	if err := promptTemplates.ExecuteTemplate(&b, name+".txt", data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// SystemPrompt is the persona given to conversational models.
func SystemPrompt() string {
	s, err := Prompt("system", PromptData{})
	if err != nil {
		return ""
	}
	return s
}
