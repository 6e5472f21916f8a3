package repository

import (
	"context"
	"time"

	"polls-backend/models"
)

// PollFilter narrows poll listings. Now and Privileged implement the
// visibility window: unprivileged callers only see polls with
// start_date <= now < expiration_date.
type PollFilter struct {
	Now        time.Time
	Privileged bool
}

// Store is the persistence contract the services are written against.
// The gorm implementation is the real one; tests may wrap or fake it.
type Store interface {
	// Poll management
	CreatePoll(ctx context.Context, poll *models.Poll) error
	GetPoll(ctx context.Context, id uint) (*models.Poll, error)
	ListPolls(ctx context.Context, filter PollFilter) ([]models.Poll, error)
	UpdatePoll(ctx context.Context, poll *models.Poll) error
	DeletePoll(ctx context.Context, id uint) error

	// Question management
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	ListQuestions(ctx context.Context, pollID uint) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error

	// Choice management
	CreateChoice(ctx context.Context, choice *models.Choice) error
	GetChoices(ctx context.Context, ids []uint) ([]models.Choice, error)
	DeleteChoice(ctx context.Context, id uint) error

	// Participants. GetOrCreateParticipant must be atomic: concurrent
	// calls with the same new user id yield exactly one row.
	GetOrCreateParticipant(ctx context.Context, userID int64) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, userID int64, firstName, lastName, email string) (*models.Participant, error)

	// Answers
	SaveAnswer(ctx context.Context, answer *models.Answer) error
	ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error)
}
