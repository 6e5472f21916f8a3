package service

import (
	"context"
	"errors"
	"time"

	"polls-backend/models"
	"polls-backend/repository"

	"gorm.io/gorm"
)

// PollService manages polls, questions and choices, and applies the
// time-window visibility rules on reads. The caller supplies `now`
// and the privilege flag explicitly: visibility is evaluated against
// one instant per request, never re-read mid-request.
type PollService interface {
	CreatePoll(ctx context.Context, poll *models.Poll) (*models.Poll, error)
	GetPoll(ctx context.Context, id uint, now time.Time, privileged bool) (*models.Poll, error)
	ListPolls(ctx context.Context, now time.Time, privileged bool) ([]models.Poll, error)
	UpdatePoll(ctx context.Context, poll *models.Poll) error
	DeletePoll(ctx context.Context, id uint) error

	CreateQuestion(ctx context.Context, question *models.Question) (*models.Question, error)
	ListQuestions(ctx context.Context, pollID uint, now time.Time, privileged bool) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error

	CreateChoice(ctx context.Context, choice *models.Choice) (*models.Choice, error)
	DeleteChoice(ctx context.Context, id uint) error
}

// PollServiceImpl implements PollService on a Store.
type PollServiceImpl struct {
	store repository.Store
}

// NewPollService creates a poll service.
func NewPollService(store repository.Store) PollService {
	return &PollServiceImpl{store: store}
}

// pollVisible reports whether a poll may be shown at `now`. Privileged
// callers see everything; everyone else only polls whose window
// satisfies start_date <= now < expiration_date.
func pollVisible(poll *models.Poll, now time.Time, privileged bool) bool {
	if privileged {
		return true
	}
	return !poll.StartDate.After(now) && now.Before(poll.ExpirationDate)
}

func validatePollWindow(poll *models.Poll) error {
	if poll.ExpirationDate.Before(poll.StartDate) {
		return rejected("start date must not be after expiration date")
	}
	return nil
}

func (s *PollServiceImpl) CreatePoll(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	if err := validatePollWindow(poll); err != nil {
		return nil, err
	}
	if err := s.store.CreatePoll(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *PollServiceImpl) GetPoll(ctx context.Context, id uint, now time.Time, privileged bool) (*models.Poll, error) {
	poll, err := s.store.GetPoll(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	// An out-of-window poll looks exactly like a missing one to
	// unprivileged callers.
	if !pollVisible(poll, now, privileged) {
		return nil, ErrPollNotFound
	}
	return poll, nil
}

func (s *PollServiceImpl) ListPolls(ctx context.Context, now time.Time, privileged bool) ([]models.Poll, error) {
	return s.store.ListPolls(ctx, repository.PollFilter{Now: now, Privileged: privileged})
}

func (s *PollServiceImpl) UpdatePoll(ctx context.Context, poll *models.Poll) error {
	if err := validatePollWindow(poll); err != nil {
		return err
	}
	if err := s.store.UpdatePoll(ctx, poll); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPollNotFound
		}
		return err
	}
	return nil
}

func (s *PollServiceImpl) DeletePoll(ctx context.Context, id uint) error {
	if err := s.store.DeletePoll(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPollNotFound
		}
		return err
	}
	return nil
}

func (s *PollServiceImpl) CreateQuestion(ctx context.Context, question *models.Question) (*models.Question, error) {
	if !question.Type.Valid() {
		return nil, rejected("invalid answer type")
	}
	if _, err := s.store.GetPoll(ctx, question.PollID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if err := s.store.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListQuestions returns the questions of one poll under the same
// visibility rules as GetPoll: a missing poll is NotFound for
// everyone, an out-of-window poll is NotFound for unprivileged
// callers.
func (s *PollServiceImpl) ListQuestions(ctx context.Context, pollID uint, now time.Time, privileged bool) ([]models.Question, error) {
	if _, err := s.GetPoll(ctx, pollID, now, privileged); err != nil {
		return nil, err
	}
	return s.store.ListQuestions(ctx, pollID)
}

func (s *PollServiceImpl) UpdateQuestion(ctx context.Context, question *models.Question) error {
	if !question.Type.Valid() {
		return rejected("invalid answer type")
	}
	if err := s.store.UpdateQuestion(ctx, question); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *PollServiceImpl) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *PollServiceImpl) CreateChoice(ctx context.Context, choice *models.Choice) (*models.Choice, error) {
	if _, err := s.store.GetQuestion(ctx, choice.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	if err := s.store.CreateChoice(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *PollServiceImpl) DeleteChoice(ctx context.Context, id uint) error {
	if err := s.store.DeleteChoice(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChoiceNotFound
		}
		return err
	}
	return nil
}
