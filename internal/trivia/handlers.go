package trivia

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Aidin1998/trivia/api/responses"
	"github.com/Aidin1998/trivia/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for trivia operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new trivia handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	return h.logger.With(
		zap.String("request_id", responses.RequestID(c)),
		zap.String("route", c.FullPath()),
	)
}

// fail logs err and writes the error body for its kind.
func (h *Handler) fail(c *gin.Context, err error) {
	logger := h.requestLogger(c)
	if status := errors.StatusOf(err).StatusCode(); status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	responses.Error(c, err)
}

// pathID parses an integer path parameter. Non-integer ids do not name a
// resource, so they are NotFound.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.NotFound.Explain("invalid %s %q", name, c.Param(name))
	}
	return uint(id), nil
}

// GetCategories handles GET /categories
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{"categories": categories})
}

// GetQuestions handles GET /questions?page=N
func (h *Handler) GetQuestions(c *gin.Context) {
	listing, err := h.service.ListQuestions(c.Request.Context(), PageFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{
		"categories":      listing.Categories,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

// GetQuestion handles GET /questions/:id
func (h *Handler) GetQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	question, err := h.service.GetQuestion(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{"question": question})
}

// DeleteQuestion handles DELETE /questions/:id
func (h *Handler) DeleteQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.service.DeleteQuestion(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{"deleted": id})
}

// CreateQuestion handles POST /questions
func (h *Handler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.Unprocessable.Explain("decode question").Wrap(err))
		return
	}

	created, err := h.service.CreateQuestion(c.Request.Context(), req, PageFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{
		"created":         created.ID,
		"questions":       created.Questions,
		"total_questions": created.Total,
	})
}

// SearchQuestions handles POST /questions/search
func (h *Handler) SearchQuestions(c *gin.Context) {
	// an empty body is the same as an absent searchTerm
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, errors.Unprocessable.Explain("decode search").Wrap(err))
		return
	}

	result, err := h.service.SearchQuestions(c.Request.Context(), req.SearchTerm, PageFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// GetQuestionsByCategory handles GET /categories/:id/questions?page=N
func (h *Handler) GetQuestionsByCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.service.QuestionsByCategory(c.Request.Context(), id, PageFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	responses.Success(c, gin.H{
		"questions":        result.Questions,
		"current_category": result.CurrentCategory,
		"total_questions":  result.Total,
	})
}

// NextQuizQuestion handles POST /quizzes
func (h *Handler) NextQuizQuestion(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.Unprocessable.Explain("decode quiz").Wrap(err))
		return
	}

	question, err := h.service.NextQuizQuestion(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	// a nil question encodes as null: the category is exhausted
	responses.Success(c, gin.H{"question": question})
}
