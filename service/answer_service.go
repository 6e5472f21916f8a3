package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"polls-backend/cache"
	"polls-backend/models"
	"polls-backend/repository"

	"gorm.io/gorm"
)

// AnswerService records answers and manages participant identities.
type AnswerService interface {
	// RecordAnswer validates and persists one answer submission.
	RecordAnswer(ctx context.Context, questionID uint, userID int64, textInput string, choiceIDs []uint) (*models.Answer, error)

	// ListAnswers returns a question's answers oldest-first.
	ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error)

	// ResolveParticipant maps an external user id to its participant,
	// creating the record on first use.
	ResolveParticipant(ctx context.Context, userID int64) (*models.Participant, error)

	// UpdateParticipant applies the self-service name/email update.
	UpdateParticipant(ctx context.Context, userID int64, firstName, lastName, email string) (*models.Participant, error)
}

// AnswerServiceImpl implements AnswerService on a Store. The lock
// service is optional; when present it serializes participant
// first-creation across instances.
type AnswerServiceImpl struct {
	store repository.Store
	locks *cache.LockService
}

// NewAnswerService creates an answer service. locks may be nil.
func NewAnswerService(store repository.Store, locks *cache.LockService) AnswerService {
	return &AnswerServiceImpl{store: store, locks: locks}
}

// RecordAnswer runs the submission pipeline: resolve the question,
// resolve the selected choices, validate, resolve the participant and
// persist. Participant resolution is deliberately deferred until
// validation has passed, so a rejected submission leaves no
// participant row behind.
func (s *AnswerServiceImpl) RecordAnswer(ctx context.Context, questionID uint, userID int64, textInput string, choiceIDs []uint) (*models.Answer, error) {
	question, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	selected, err := s.resolveChoices(ctx, choiceIDs)
	if err != nil {
		return nil, err
	}

	normalized, err := ValidateAnswer(question, textInput, selected)
	if err != nil {
		return nil, err
	}

	participant, err := s.ResolveParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		QuestionID:    question.ID,
		ParticipantID: participant.ID,
		TextInput:     normalized.TextInput,
		Choices:       normalized.Choices,
	}
	if err := s.store.SaveAnswer(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// resolveChoices loads the requested choices, deduplicating ids. An id
// that resolves to nothing is kept as a placeholder with no owning
// question, so the validator's ownership check rejects it the same way
// it rejects a choice from another question.
func (s *AnswerServiceImpl) resolveChoices(ctx context.Context, choiceIDs []uint) ([]models.Choice, error) {
	if len(choiceIDs) == 0 {
		return nil, nil
	}

	unique := make([]uint, 0, len(choiceIDs))
	seen := make(map[uint]bool, len(choiceIDs))
	for _, id := range choiceIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := s.store.GetChoices(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Choice, len(found))
	for _, choice := range found {
		byID[choice.ID] = choice
	}

	selected := make([]models.Choice, 0, len(unique))
	for _, id := range unique {
		choice, ok := byID[id]
		if !ok {
			choice = models.Choice{Model: gorm.Model{ID: id}}
		}
		selected = append(selected, choice)
	}
	return selected, nil
}

func (s *AnswerServiceImpl) ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	if _, err := s.store.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return s.store.ListAnswers(ctx, questionID)
}

// ResolveParticipant returns the participant for userID, creating one
// on first use. The store's upsert on the unique user_id index is the
// hard guarantee; the distributed lock only keeps concurrent first
// submissions from hammering the conflict path across instances.
func (s *AnswerServiceImpl) ResolveParticipant(ctx context.Context, userID int64) (*models.Participant, error) {
	if s.locks != nil {
		lockName := fmt.Sprintf("participant:%d", userID)
		mutex, err := s.locks.AcquireLock(lockName, 2*time.Second)
		if err != nil {
			log.Printf("Participant lock unavailable for user %d, relying on unique index: %v", userID, err)
		} else {
			defer func() {
				if _, err := mutex.Unlock(); err != nil {
					log.Printf("Participant lock release failed for user %d: %v", userID, err)
				}
			}()
		}
	}
	return s.store.GetOrCreateParticipant(ctx, userID)
}

func (s *AnswerServiceImpl) UpdateParticipant(ctx context.Context, userID int64, firstName, lastName, email string) (*models.Participant, error) {
	participant, err := s.store.UpdateParticipant(ctx, userID, firstName, lastName, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return participant, nil
}
