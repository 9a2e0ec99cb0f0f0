package trivia

import (
	"context"

	"github.com/Aidin1998/trivia/pkg/errors"
	"github.com/Aidin1998/trivia/pkg/metrics"
	"github.com/Aidin1998/trivia/pkg/models"
	"go.uber.org/zap"
)

// NextQuizQuestion draws a random question from the requested category that
// is not among the previous questions. It returns nil when the category is
// exhausted.
//
// Category id 0 is filtered literally (category == 0). Clients use 0 for
// "all categories", which this endpoint does not implement.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*models.QuestionRecord, error) {
	if req.QuizCategory == nil || req.QuizCategory.ID == nil {
		return nil, errors.Unprocessable.Explain("quiz_category.id is required")
	}
	category := int(*req.QuizCategory.ID)

	exclude := make([]int, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		exclude = append(exclude, int(id))
	}

	candidates, err := s.repo.QuizCandidates(ctx, category, exclude)
	if err != nil {
		return nil, errors.Unprocessable.Explain("quiz candidates for category %d", category).Wrap(err)
	}
	if len(candidates) == 0 {
		metrics.QuizQuestionsServed.WithLabelValues("exhausted").Inc()
		s.logger.Debug("Quiz category exhausted",
			zap.Int("category", category),
			zap.Int("previous", len(exclude)))
		return nil, nil
	}

	chosen := candidates[s.pick(len(candidates))].Format()
	metrics.QuizQuestionsServed.WithLabelValues("question").Inc()
	return &chosen, nil
}
