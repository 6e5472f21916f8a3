package api

import (
	"net/http"
	"strconv"
	"time"

	"polls-backend/models"
	"polls-backend/service"

	"github.com/gin-gonic/gin"
)

// PollController serves poll, question and choice management plus the
// visibility-filtered read endpoints.
type PollController struct {
	polls service.PollService
}

// NewPollController creates a poll controller.
func NewPollController(polls service.PollService) *PollController {
	return &PollController{polls: polls}
}

// RegisterRoutes wires the poll routes into the API group. Reads are
// open (the visibility filter decides what they see); writes require
// the admin header.
func (c *PollController) RegisterRoutes(root *gin.RouterGroup) {
	polls := root.Group("/polls")
	{
		polls.GET("", c.ListPolls)
		polls.GET("/:id", c.GetPoll)
		polls.GET("/:id/questions", c.ListQuestions)

		polls.POST("", RequireAdmin(), c.CreatePoll)
		polls.PUT("/:id", RequireAdmin(), c.UpdatePoll)
		polls.DELETE("/:id", RequireAdmin(), c.DeletePoll)
		polls.POST("/:id/questions", RequireAdmin(), c.CreateQuestion)
	}

	questions := root.Group("/questions")
	{
		questions.PUT("/:id", RequireAdmin(), c.UpdateQuestion)
		questions.DELETE("/:id", RequireAdmin(), c.DeleteQuestion)
		questions.POST("/:id/choices", RequireAdmin(), c.CreateChoice)
	}

	root.DELETE("/choices/:id", RequireAdmin(), c.DeleteChoice)
}

// CreatePollRequest is the admin payload for creating or updating a
// poll. Dates are RFC3339 strings, stored in UTC.
type CreatePollRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	StartDate      string `json:"start_date" binding:"required"`
	ExpirationDate string `json:"expiration_date" binding:"required"`
}

// CreateQuestionRequest is the admin payload for a question.
type CreateQuestionRequest struct {
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// CreateChoiceRequest is the admin payload for a choice.
type CreateChoiceRequest struct {
	Title     string `json:"title" binding:"required"`
	LockOther bool   `json:"lock_other"`
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func (c *PollController) bindPoll(ctx *gin.Context) (*models.Poll, bool) {
	var req CreatePollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return nil, false
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start date format"})
		return nil, false
	}
	expirationDate, err := time.Parse(time.RFC3339, req.ExpirationDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid expiration date format"})
		return nil, false
	}

	return &models.Poll{
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      startDate.UTC(),
		ExpirationDate: expirationDate.UTC(),
	}, true
}

// CreatePoll handles POST /api/polls.
func (c *PollController) CreatePoll(ctx *gin.Context) {
	poll, ok := c.bindPoll(ctx)
	if !ok {
		return
	}

	created, err := c.polls.CreatePoll(ctx.Request.Context(), poll)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListPolls handles GET /api/polls.
func (c *PollController) ListPolls(ctx *gin.Context) {
	polls, err := c.polls.ListPolls(ctx.Request.Context(), requestNow(ctx), isPrivileged(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, polls)
}

// GetPoll handles GET /api/polls/:id.
func (c *PollController) GetPoll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	poll, err := c.polls.GetPoll(ctx.Request.Context(), id, requestNow(ctx), isPrivileged(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, poll)
}

// UpdatePoll handles PUT /api/polls/:id.
func (c *PollController) UpdatePoll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	poll, ok := c.bindPoll(ctx)
	if !ok {
		return
	}
	poll.ID = id

	if err := c.polls.UpdatePoll(ctx.Request.Context(), poll); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, poll)
}

// DeletePoll handles DELETE /api/polls/:id.
func (c *PollController) DeletePoll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.polls.DeletePoll(ctx.Request.Context(), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuestion handles POST /api/polls/:id/questions.
func (c *PollController) CreateQuestion(ctx *gin.Context) {
	pollID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question := &models.Question{
		PollID: pollID,
		Text:   req.Text,
		Type:   models.AnswerType(req.Type),
	}
	created, err := c.polls.CreateQuestion(ctx.Request.Context(), question)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListQuestions handles GET /api/polls/:id/questions.
func (c *PollController) ListQuestions(ctx *gin.Context) {
	pollID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.polls.ListQuestions(ctx.Request.Context(), pollID, requestNow(ctx), isPrivileged(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// UpdateQuestion handles PUT /api/questions/:id.
func (c *PollController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question := &models.Question{
		Text: req.Text,
		Type: models.AnswerType(req.Type),
	}
	question.ID = id

	if err := c.polls.UpdateQuestion(ctx.Request.Context(), question); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion handles DELETE /api/questions/:id.
func (c *PollController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.polls.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateChoice handles POST /api/questions/:id/choices.
func (c *PollController) CreateChoice(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req CreateChoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	choice := &models.Choice{
		QuestionID: questionID,
		Title:      req.Title,
		LockOther:  req.LockOther,
	}
	created, err := c.polls.CreateChoice(ctx.Request.Context(), choice)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// DeleteChoice handles DELETE /api/choices/:id.
func (c *PollController) DeleteChoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.polls.DeleteChoice(ctx.Request.Context(), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
