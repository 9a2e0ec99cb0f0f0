package trivia

import (
	"context"
	"fmt"
	"testing"

	"github.com/Aidin1998/trivia/internal/config"
	"github.com/Aidin1998/trivia/internal/database"
	"github.com/Aidin1998/trivia/pkg/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedCategories(t *testing.T, db *gorm.DB) {
	t.Helper()
	_, err := database.Seed(context.Background(), db, &database.Fixture{Categories: database.DefaultCategories})
	require.NoError(t, err)
}

// seedQuestions inserts n questions into category and returns their ids.
func seedQuestions(t *testing.T, db *gorm.DB, category, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			Question:   fmt.Sprintf("Category %d question #%d?", category, i),
			Answer:     fmt.Sprintf("answer %d", i),
			Category:   category,
			Difficulty: i%5 + 1,
		}
		require.NoError(t, db.Create(&q).Error)
		ids = append(ids, q.ID)
	}
	return ids
}

func newTestService(t *testing.T, opts ...Option) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	seedCategories(t, db)
	return NewService(zap.NewNop(), db, opts...), db
}

func looseInt(v int) *models.LooseInt {
	n := models.LooseInt(v)
	return &n
}
