package database

import (
	"context"
	"fmt"
	"os"

	"github.com/Aidin1998/trivia/pkg/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture is the YAML seed file layout:
//
//	categories:
//	  - id: 1
//	    type: Science
//	questions:
//	  - question: What is the heaviest organ in the human body?
//	    answer: The Liver
//	    category: 1
//	    difficulty: 4
type Fixture struct {
	Categories []models.Category `yaml:"categories"`
	Questions  []models.Question `yaml:"questions"`
}

// DefaultCategories are seeded when no fixture file is given.
var DefaultCategories = []models.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// SeedResult reports what Seed wrote.
type SeedResult struct {
	Categories int
	Questions  int
}

// LoadFixture reads a YAML fixture. An empty path yields the default categories.
func LoadFixture(path string) (*Fixture, error) {
	if path == "" {
		return &Fixture{Categories: DefaultCategories}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	for i, c := range f.Categories {
		if c.ID == 0 || c.Type == "" {
			return nil, fmt.Errorf("category %d: id and type are required", i)
		}
	}
	for i, q := range f.Questions {
		if q.Question == "" || q.Answer == "" {
			return nil, fmt.Errorf("question %d: question and answer are required", i)
		}
	}
	return &f, nil
}

// Seed upserts categories by id and inserts questions whose text is not
// already present. Running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, f *Fixture) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(f.Categories) > 0 {
			categories := append([]models.Category(nil), f.Categories...)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"type"}),
			}).Create(&categories).Error; err != nil {
				return fmt.Errorf("failed to upsert categories: %w", err)
			}
			res.Categories = len(categories)
		}

		for _, q := range f.Questions {
			var existing int64
			if err := tx.Model(&models.Question{}).Where("question = ?", q.Question).Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to look up question %q: %w", q.Question, err)
			}
			if existing > 0 {
				continue
			}
			q.ID = 0
			if err := tx.Create(&q).Error; err != nil {
				return fmt.Errorf("failed to insert question %q: %w", q.Question, err)
			}
			res.Questions++
		}
		return nil
	})
	return res, err
}
