// Package trivia implements the trivia question API: category browsing,
// question listing, creation, deletion, search and quiz draws.
package trivia

import (
	"context"
	"math/rand/v2"

	"github.com/Aidin1998/trivia/pkg/errors"
	"github.com/Aidin1998/trivia/pkg/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements the trivia operations. Every operation returns either a
// result or an *errors.Error whose kind decides the response status.
type Service struct {
	logger     *zap.Logger
	repo       *Repository
	categories CategoryCache
	validate   *validator.Validate
	pick       func(n int) int
}

// Option configures a Service.
type Option func(*Service)

// WithCategoryCache puts a read-through cache in front of category queries.
func WithCategoryCache(cache CategoryCache) Option {
	return func(s *Service) { s.categories = cache }
}

// WithPicker replaces the uniform random choice used by quiz draws.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// NewService creates a new trivia service
func NewService(logger *zap.Logger, db *gorm.DB, opts ...Option) *Service {
	svc := &Service{
		logger:   logger,
		repo:     NewRepository(db),
		validate: validator.New(),
		pick:     rand.IntN,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) listCategories(ctx context.Context) ([]models.Category, error) {
	if s.categories != nil {
		if cached, ok := s.categories.Get(ctx); ok {
			return cached, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.categories != nil && len(categories) > 0 {
		s.categories.Set(ctx, categories)
	}
	return categories, nil
}

// Categories returns every category as an {id: type} map.
func (s *Service) Categories(ctx context.Context) (models.CategoryMap, error) {
	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, errors.ServerError.Explain("list categories").Wrap(err)
	}
	if len(categories) == 0 {
		return nil, errors.NotFound.Explain("no categories")
	}
	return models.CategoryMapOf(categories), nil
}

// ListQuestions returns the requested page of all questions with the
// category map. An empty page is NotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (*QuestionListing, error) {
	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, errors.ServerError.Explain("list questions").Wrap(err)
	}
	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, errors.ServerError.Explain("list categories").Wrap(err)
	}

	listing := &QuestionListing{
		QuestionPage: pageOf(page, questions),
		Categories:   models.CategoryMapOf(categories),
	}
	if len(listing.Questions) == 0 {
		return nil, errors.NotFound.Explain("page %d is empty", page)
	}
	return listing, nil
}

// GetQuestion returns a single formatted question.
func (s *Service) GetQuestion(ctx context.Context, id uint) (models.QuestionRecord, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return models.QuestionRecord{}, errors.ServerError.Explain("get question %d", id).Wrap(err)
	}
	if question == nil {
		return models.QuestionRecord{}, errors.NotFound.Explain("question %d", id)
	}
	return question.Format(), nil
}

// DeleteQuestion removes a question. A missing question is Unprocessable,
// as is any failure of the lookup or the delete.
func (s *Service) DeleteQuestion(ctx context.Context, id uint) error {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return errors.Unprocessable.Explain("look up question %d", id).Wrap(err)
	}
	if question == nil {
		return errors.Unprocessable.Explain("question %d does not exist", id)
	}
	if err := s.repo.DeleteQuestion(ctx, question); err != nil {
		return errors.Unprocessable.Explain("delete question %d", id).Wrap(err)
	}

	s.logger.Info("Question deleted", zap.Uint("question_id", id))
	return nil
}

// CreateQuestion validates and stores a new question, then returns the
// requested page of all questions.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest, page int) (*CreatedQuestion, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Unprocessable.Explain("invalid question").Wrap(err)
	}

	question := &models.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, errors.Unprocessable.Explain("insert question").Wrap(err)
	}
	s.logger.Info("Question created",
		zap.Uint("question_id", question.ID),
		zap.Int("category", question.Category))

	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, errors.ServerError.Explain("list questions").Wrap(err)
	}
	return &CreatedQuestion{
		QuestionPage: pageOf(page, questions),
		ID:           question.ID,
	}, nil
}

// SearchQuestions returns the requested page of questions whose text
// contains term, case-insensitively. No match is NotFound; a page past the
// matches is an empty page.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	questions, err := s.repo.SearchQuestions(ctx, term)
	if err != nil {
		return nil, errors.ServerError.Explain("search %q", term).Wrap(err)
	}
	if len(questions) == 0 {
		return nil, errors.NotFound.Explain("no question matches %q", term)
	}
	result := pageOf(page, questions)
	return &result, nil
}

// QuestionsByCategory returns the requested page of a category's questions.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID uint, page int) (*CategoryQuestions, error) {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.ServerError.Explain("get category %d", categoryID).Wrap(err)
	}
	if category == nil {
		return nil, errors.NotFound.Explain("category %d", categoryID)
	}

	questions, err := s.repo.QuestionsByCategory(ctx, int(category.ID))
	if err != nil {
		return nil, errors.ServerError.Explain("questions of category %d", categoryID).Wrap(err)
	}
	return &CategoryQuestions{
		QuestionPage:    pageOf(page, questions),
		CurrentCategory: category.Type,
	}, nil
}
