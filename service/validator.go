package service

import (
	"polls-backend/models"
)

// NormalizedAnswer is the payload that survives validation: the text
// for TEXT questions, the selected choices for SINGLE/MULTI.
type NormalizedAnswer struct {
	TextInput *string
	Choices   []models.Choice
}

// ValidateAnswer decides whether a submitted answer is structurally
// valid for the question's answer type. It is a pure decision
// function; rejections come back as *ValidationError.
//
// Rule order matters: the cardinality check for the question's type
// runs first, then every selected choice is checked for ownership.
// For TEXT questions any supplied choices are silently discarded.
func ValidateAnswer(question *models.Question, textInput string, selected []models.Choice) (*NormalizedAnswer, error) {
	switch question.Type {
	case models.AnswerTypeText:
		if textInput == "" {
			return nil, rejected("text input required")
		}
		return &NormalizedAnswer{TextInput: &textInput}, nil

	case models.AnswerTypeSingle:
		if len(selected) != 1 {
			return nil, rejected("select exactly one")
		}

	case models.AnswerTypeMulti:
		if len(selected) == 0 {
			return nil, rejected("select at least one")
		}

	default:
		return nil, rejected("unknown answer type")
	}

	for _, choice := range selected {
		if choice.QuestionID != question.ID {
			return nil, rejected("choice does not belong to question")
		}
	}

	return &NormalizedAnswer{Choices: selected}, nil
}
