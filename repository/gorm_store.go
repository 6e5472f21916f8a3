package repository

import (
	"context"

	"polls-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a gorm database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreatePoll(ctx context.Context, poll *models.Poll) error {
	return s.db.WithContext(ctx).Create(poll).Error
}

func (s *GormStore) GetPoll(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.WithContext(ctx).First(&poll, id).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

func (s *GormStore) ListPolls(ctx context.Context, filter PollFilter) ([]models.Poll, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if !filter.Privileged {
		query = query.Where("start_date <= ? AND expiration_date > ?", filter.Now, filter.Now)
	}

	var polls []models.Poll
	if err := query.Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

func (s *GormStore) UpdatePoll(ctx context.Context, poll *models.Poll) error {
	result := s.db.WithContext(ctx).Model(&models.Poll{}).
		Where("id = ?", poll.ID).
		Select("title", "description", "start_date", "expiration_date").
		Updates(poll)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePoll removes a poll together with its questions and their
// choices. Soft deletes do not trigger database-level cascades, so the
// children are deleted explicitly inside one transaction.
func (s *GormStore) DeletePoll(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		if err := tx.First(&poll, id).Error; err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("poll_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Choice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("poll_id = ?", id).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&poll).Error
	})
}

func (s *GormStore) CreateQuestion(ctx context.Context, question *models.Question) error {
	return s.db.WithContext(ctx).Create(question).Error
}

func (s *GormStore) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).Preload("Choices").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *GormStore) ListQuestions(ctx context.Context, pollID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Preload("Choices").
		Where("poll_id = ?", pollID).
		Order("id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *GormStore) UpdateQuestion(ctx context.Context, question *models.Question) error {
	result := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", question.ID).
		Select("text", "type").
		Updates(question)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) DeleteQuestion(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
}

func (s *GormStore) CreateChoice(ctx context.Context, choice *models.Choice) error {
	return s.db.WithContext(ctx).Create(choice).Error
}

// GetChoices resolves choice ids without question scoping; deciding
// whether a resolved choice actually belongs to the target question is
// the validator's job.
func (s *GormStore) GetChoices(ctx context.Context, ids []uint) ([]models.Choice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var choices []models.Choice
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&choices).Error; err != nil {
		return nil, err
	}
	return choices, nil
}

func (s *GormStore) DeleteChoice(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Choice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetOrCreateParticipant inserts a participant row for userID unless
// one exists, relying on the unique index rather than a look-then-create
// pair, then returns the newest matching row.
func (s *GormStore) GetOrCreateParticipant(ctx context.Context, userID int64) (*models.Participant, error) {
	insert := models.Participant{UserID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&insert).Error
	if err != nil {
		return nil, err
	}

	var participant models.Participant
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateParticipant applies the self-service profile update. Only
// name and email are writable from this path; user id and answers are
// immutable.
func (s *GormStore) UpdateParticipant(ctx context.Context, userID int64, firstName, lastName, email string) (*models.Participant, error) {
	result := s.db.WithContext(ctx).Model(&models.Participant{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"email":      email,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var participant models.Participant
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// SaveAnswer writes the answer row and its choice associations as one
// unit; a partially linked answer is never observable.
func (s *GormStore) SaveAnswer(ctx context.Context, answer *models.Answer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Omit("Choices.*") links the join rows without touching the
		// choice rows themselves.
		return tx.Omit("Choices.*").Create(answer).Error
	})
}

func (s *GormStore) ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Preload("Choices").
		Where("question_id = ?", questionID).
		Order("created_at asc, id asc").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
