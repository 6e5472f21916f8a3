package service

import (
	"context"
	"sync"
	"testing"

	"polls-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAnswerText(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, _ := seedQuestion(t, db, models.AnswerTypeText)

	answer, err := svc.RecordAnswer(ctx, question.ID, 100, "my answer", nil)
	require.NoError(t, err)
	require.NotNil(t, answer.TextInput)
	assert.Equal(t, "my answer", *answer.TextInput)
	assert.Empty(t, answer.Choices)
	assert.NotZero(t, answer.ParticipantID)
	assert.Equal(t, int64(1), participantCount(t, db))
}

func TestRecordAnswerTextDiscardsChoices(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, choices := seedQuestion(t, db, models.AnswerTypeText, "ignored")

	answer, err := svc.RecordAnswer(ctx, question.ID, 100, "text wins", []uint{choices[0].ID})
	require.NoError(t, err)
	assert.Empty(t, answer.Choices)
}

func TestRecordAnswerSingle(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	// Q1 (SINGLE) owns C1, C2; C3 belongs to another question.
	q1, q1Choices := seedQuestion(t, db, models.AnswerTypeSingle, "C1", "C2")
	_, q2Choices := seedQuestion(t, db, models.AnswerTypeSingle, "C3")
	c1, c2, c3 := q1Choices[0], q1Choices[1], q2Choices[0]

	answer, err := svc.RecordAnswer(ctx, q1.ID, 100, "", []uint{c1.ID})
	require.NoError(t, err)
	require.Len(t, answer.Choices, 1)
	assert.Equal(t, c1.ID, answer.Choices[0].ID)
	assert.Nil(t, answer.TextInput)

	_, err = svc.RecordAnswer(ctx, q1.ID, 100, "", []uint{c1.ID, c2.ID})
	assertRejected(t, err, "select exactly one")

	_, err = svc.RecordAnswer(ctx, q1.ID, 100, "", nil)
	assertRejected(t, err, "select exactly one")

	_, err = svc.RecordAnswer(ctx, q1.ID, 100, "", []uint{c3.ID})
	assertRejected(t, err, "choice does not belong to question")
}

func TestRecordAnswerMulti(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, choices := seedQuestion(t, db, models.AnswerTypeMulti, "A", "B", "C")

	answer, err := svc.RecordAnswer(ctx, question.ID, 100, "", []uint{choices[0].ID, choices[2].ID})
	require.NoError(t, err)
	assert.Len(t, answer.Choices, 2)

	_, err = svc.RecordAnswer(ctx, question.ID, 100, "", nil)
	assertRejected(t, err, "select at least one")
}

func TestRecordAnswerUnknownChoiceID(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, _ := seedQuestion(t, db, models.AnswerTypeSingle, "A")

	// An id that resolves to nothing counts as a foreign choice, not
	// as a missing selection.
	_, err := svc.RecordAnswer(ctx, question.ID, 100, "", []uint{99999})
	assertRejected(t, err, "choice does not belong to question")
}

func TestRecordAnswerQuestionNotFound(t *testing.T) {
	_, store := newTestStore(t)
	svc := NewAnswerService(store, nil)

	_, err := svc.RecordAnswer(context.Background(), 12345, 100, "text", nil)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestRejectedSubmissionCreatesNoParticipant(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, _ := seedQuestion(t, db, models.AnswerTypeText)

	_, err := svc.RecordAnswer(ctx, question.ID, 555, "", nil)
	assertRejected(t, err, "text input required")
	assert.Zero(t, participantCount(t, db), "participant resolution is deferred until validation passes")

	_, err = svc.RecordAnswer(ctx, question.ID, 555, "now valid", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), participantCount(t, db))
}

func TestResolveParticipantStable(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	first, err := svc.ResolveParticipant(ctx, 99)
	require.NoError(t, err)
	second, err := svc.ResolveParticipant(ctx, 99)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), participantCount(t, db))
}

func TestResolveParticipantConcurrent(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	const workers = 8
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			participant, err := svc.ResolveParticipant(ctx, 4242)
			if assert.NoError(t, err) {
				ids[i] = participant.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), participantCount(t, db))
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestListAnswers(t *testing.T) {
	db, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	question, _ := seedQuestion(t, db, models.AnswerTypeText)

	for _, text := range []string{"one", "two"} {
		_, err := svc.RecordAnswer(ctx, question.ID, 7, text, nil)
		require.NoError(t, err)
	}

	answers, err := svc.ListAnswers(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "one", *answers[0].TextInput)
	assert.Equal(t, "two", *answers[1].TextInput)

	_, err = svc.ListAnswers(ctx, 9999)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestUpdateParticipantSelfService(t *testing.T) {
	_, store := newTestStore(t)
	svc := NewAnswerService(store, nil)
	ctx := context.Background()

	created, err := svc.ResolveParticipant(ctx, 31)
	require.NoError(t, err)

	updated, err := svc.UpdateParticipant(ctx, 31, "Grace", "Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, int64(31), updated.UserID, "user id is immutable from the self-service path")

	_, err = svc.UpdateParticipant(ctx, 888, "No", "One", "no@example.com")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func assertRejected(t *testing.T, err error, reason string) {
	t.Helper()
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, reason, validation.Reason)
}
