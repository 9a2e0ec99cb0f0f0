package trivia

import (
	"context"
	"errors"
	"strings"

	"github.com/Aidin1998/trivia/pkg/models"
	"gorm.io/gorm"
)

// Repository is the gorm-backed store for questions and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository instance
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns nil without error when the category does not exist.
func (r *Repository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion returns nil without error when the question does not exist.
func (r *Repository) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// CreateQuestion inserts q and fills in its generated id.
func (r *Repository) CreateQuestion(ctx context.Context, q *models.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *Repository) DeleteQuestion(ctx context.Context, q *models.Question) error {
	return r.db.WithContext(ctx).Delete(q).Error
}

// SearchQuestions matches term as a case-insensitive literal substring of the
// question text. SQLite's LOWER only folds ASCII, so there the match runs on
// the loaded rows with a Unicode fold.
func (r *Repository) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	if r.db.Dialector.Name() == "postgres" {
		var questions []models.Question
		err := r.db.WithContext(ctx).
			Where(`question ILIKE ? ESCAPE '\'`, "%"+escapeLike(term)+"%").
			Order("id").
			Find(&questions).Error
		if err != nil {
			return nil, err
		}
		return questions, nil
	}

	questions, err := r.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	matches := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

func (r *Repository) QuestionsByCategory(ctx context.Context, category int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// QuizCandidates returns the questions of category whose ids are not in exclude.
func (r *Repository) QuizCandidates(ctx context.Context, category int, exclude []int) ([]models.Question, error) {
	query := r.db.WithContext(ctx).Where("category = ?", category)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var questions []models.Question
	if err := query.Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
