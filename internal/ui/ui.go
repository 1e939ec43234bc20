// Package ui holds the interactive prompts of the merger command.
package ui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// SurveyConfirmer prompts on the terminal.
type SurveyConfirmer struct{}

// NewSurveyConfirmer creates a terminal confirmer.
func NewSurveyConfirmer() *SurveyConfirmer {
	return &SurveyConfirmer{}
}

// Confirm asks message and defaults to no.
func (c *SurveyConfirmer) Confirm(message string) (bool, error) {
	answer := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return answer, nil
}

// AutoConfirmer answers every question with a fixed value. It backs the --yes flag.
type AutoConfirmer bool

// Confirm returns the fixed answer.
func (a AutoConfirmer) Confirm(string) (bool, error) {
	return bool(a), nil
}

// MergePrompt builds the question asked before merging.
func MergePrompt(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("Merge 1 %s?", noun)
	}
	return fmt.Sprintf("Merge %d %ss?", count, noun)
}
