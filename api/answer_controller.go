package api

import (
	"net/http"

	"polls-backend/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AnswerController serves answer submission, the admin answer listing
// and the participant self-service update.
type AnswerController struct {
	answers     service.AnswerService
	submitLimit *rate.Limiter
}

// NewAnswerController creates an answer controller. The limiter
// throttles answer submission only.
func NewAnswerController(answers service.AnswerService, submitLimit *rate.Limiter) *AnswerController {
	return &AnswerController{answers: answers, submitLimit: submitLimit}
}

// RegisterRoutes wires the answer routes into the API group.
func (c *AnswerController) RegisterRoutes(root *gin.RouterGroup) {
	questions := root.Group("/questions")
	{
		questions.POST("/:id/answers", RateLimit(c.submitLimit), c.SubmitAnswer)
		questions.GET("/:id/answers", RequireAdmin(), c.ListAnswers)
	}

	root.PUT("/participants/me", c.UpdateParticipant)
}

// SubmitAnswerRequest is one answer submission: free text and/or a
// set of selected choice ids, judged against the question's type.
type SubmitAnswerRequest struct {
	TextInput string `json:"text_input"`
	ChoiceIDs []uint `json:"choice_ids"`
}

// UpdateParticipantRequest is the self-service profile payload. The
// user id itself is immutable and comes from the identity header.
type UpdateParticipantRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SubmitAnswer handles POST /api/questions/:id/answers.
func (c *AnswerController) SubmitAnswer(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := callerUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "user id required"})
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := c.answers.RecordAnswer(ctx.Request.Context(), questionID, userID, req.TextInput, req.ChoiceIDs)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, answer)
}

// ListAnswers handles GET /api/questions/:id/answers. Answers come
// back oldest-first.
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	answers, err := c.answers.ListAnswers(ctx.Request.Context(), questionID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// UpdateParticipant handles PUT /api/participants/me.
func (c *AnswerController) UpdateParticipant(ctx *gin.Context) {
	userID, ok := callerUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "user id required"})
		return
	}

	var req UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := c.answers.UpdateParticipant(ctx.Request.Context(), userID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, participant)
}
