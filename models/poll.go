package models

import (
	"time"

	"gorm.io/gorm"
)

// AnswerType declares the shape of answers a question accepts.
// The set is closed; values are stored as-is in the database.
type AnswerType string

const (
	AnswerTypeText   AnswerType = "TEXT"   // free text
	AnswerTypeSingle AnswerType = "SINGLE" // exactly one choice
	AnswerTypeMulti  AnswerType = "MULTI"  // one or more choices
)

// Valid reports whether t is one of the declared answer types.
func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeText, AnswerTypeSingle, AnswerTypeMulti:
		return true
	}
	return false
}

// Poll represents a time-windowed collection of questions. A poll is
// visible to unprivileged callers only while StartDate <= now < ExpirationDate.
type Poll struct {
	gorm.Model     // Includes fields like ID, CreatedAt, UpdatedAt, DeletedAt
	Title          string     `gorm:"size:1024;not null" json:"title"`
	Description    string     `gorm:"size:4096" json:"description"`
	StartDate      time.Time  `gorm:"not null;index" json:"start_date"`
	ExpirationDate time.Time  `gorm:"not null;index" json:"expiration_date"`
	Questions      []Question `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// Question is a single prompt within a poll.
type Question struct {
	gorm.Model
	PollID  uint       `gorm:"not null;index" json:"poll_id"`
	Text    string     `gorm:"size:8192;not null" json:"text"`
	Type    AnswerType `gorm:"size:6;not null" json:"type"`
	Choices []Choice   `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

// Choice is a selectable option belonging to a SINGLE/MULTI question.
//
// LockOther is stored and serialized but nothing reads it yet; the
// intended semantics are unresolved on the product side.
type Choice struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Title      string `gorm:"size:4096;not null" json:"title"`
	LockOther  bool   `gorm:"default:false" json:"lock_other"`
}
