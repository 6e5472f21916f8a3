package models

import (
	"gorm.io/gorm"
)

// Participant is the durable identity behind a caller-supplied user id.
// Records are created lazily on first answer submission; UserID is
// enforced unique at the database level so concurrent first submissions
// cannot mint two rows.
type Participant struct {
	gorm.Model
	UserID    int64    `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName string   `gorm:"size:256" json:"first_name"`
	LastName  string   `gorm:"size:256" json:"last_name"`
	Email     string   `gorm:"size:512" json:"email"`
	Answers   []Answer `gorm:"foreignKey:ParticipantID" json:"answers,omitempty"`
}

// Answer is one participant's response to one question. TextInput is
// set for TEXT questions; Choices carries the selections for
// SINGLE/MULTI questions. Answers are written once and never mutated;
// listings return them oldest-first by CreatedAt.
type Answer struct {
	gorm.Model
	QuestionID    uint     `gorm:"not null;index" json:"question_id"`
	ParticipantID uint     `gorm:"not null;index" json:"participant_id"`
	TextInput     *string  `gorm:"size:8096" json:"text_input,omitempty"`
	Choices       []Choice `gorm:"many2many:answer_choices" json:"choices,omitempty"`
}
