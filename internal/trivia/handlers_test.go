package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aidin1998/trivia/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupRouter builds a router over a seeded in-memory store.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, db := newTestService(t)

	router := gin.New()
	Routes(router, NewHandler(svc, zap.NewNop()))
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func assertError(t *testing.T, resp map[string]any, code int, message string) {
	t.Helper()
	assert.Equal(t, false, resp["success"])
	assert.EqualValues(t, code, resp["error"])
	assert.Equal(t, message, resp["message"])
}

func TestGetCategoriesHandler(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, map[string]any{
		"1": "Science", "2": "Art", "3": "Geography",
		"4": "History", "5": "Entertainment", "6": "Sports",
	}, resp["categories"])
}

func TestGetQuestionsHandler(t *testing.T) {
	router, db := setupRouter(t)
	seedQuestions(t, db, 1, 19)

	for page, size := range map[int]int{1: 10, 2: 9} {
		w, resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/questions?page=%d", page), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp["success"])
		assert.Len(t, resp["questions"], size)
		assert.EqualValues(t, 19, resp["total_questions"])
		assert.Len(t, resp["categories"], 6)
	}

	w, resp := doJSON(t, router, http.MethodGet, "/questions?page=10000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertError(t, resp, 404, "resource not found")
}

func TestDeleteQuestionHandler(t *testing.T) {
	router, db := setupRouter(t)
	ids := seedQuestions(t, db, 1, 2)

	w, resp := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/questions/%d", ids[1]), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, ids[1], resp["deleted"])

	var remaining int64
	require.NoError(t, db.Model(&models.Question{}).Where("id = ?", ids[1]).Count(&remaining).Error)
	assert.Zero(t, remaining)

	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/questions/%d", ids[1]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertError(t, resp, 404, "resource not found")

	w, resp = doJSON(t, router, http.MethodDelete, "/questions/10000", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assertError(t, resp, 422, "unprocessable")

	w, resp = doJSON(t, router, http.MethodDelete, "/questions/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertError(t, resp, 404, "resource not found")
}

func TestCreateQuestionHandlerRoundTrip(t *testing.T) {
	router, _ := setupRouter(t)

	submitted := map[string]any{
		"question":   "Can I pass this course?",
		"answer":     "Yes, of course",
		"category":   "1",
		"difficulty": "1",
	}
	w, resp := doJSON(t, router, http.MethodPost, "/questions", submitted)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 1, resp["total_questions"])
	assert.Len(t, resp["questions"], 1)

	created := resp["created"].(float64)
	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/questions/%d", int(created)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"id":         created,
		"question":   "Can I pass this course?",
		"answer":     "Yes, of course",
		"category":   1.0,
		"difficulty": 1.0,
	}, resp["question"])

	w, resp = doJSON(t, router, http.MethodGet, "/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := resp["questions"].([]any)
	assert.Equal(t, "Can I pass this course?", listed[0].(map[string]any)["question"])
}

func TestCreateQuestionHandlerRejects(t *testing.T) {
	router, _ := setupRouter(t)

	bodies := map[string]any{
		"missing answer":   map[string]any{"question": "Q?", "category": 1, "difficulty": 1},
		"empty question":   map[string]any{"question": "", "answer": "A", "category": 1, "difficulty": 1},
		"zero difficulty":  map[string]any{"question": "Q?", "answer": "A", "category": 1, "difficulty": 0},
		"null category":    map[string]any{"question": "Q?", "answer": "A", "category": nil, "difficulty": 1},
		"word category":    map[string]any{"question": "Q?", "answer": "A", "category": "Art", "difficulty": 1},
		"malformed json":   `{"question": `,
		"empty body":       nil,
	}
	for name, body := range bodies {
		w, resp := doJSON(t, router, http.MethodPost, "/questions", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, name)
		assertError(t, resp, 422, "unprocessable")
	}
}

func TestSearchQuestionsHandler(t *testing.T) {
	router, db := setupRouter(t)
	seedQuestions(t, db, 2, 12)
	require.NoError(t, db.Create(&models.Question{Question: "Which is the only team to play in every soccer World Cup?", Answer: "Brazil", Category: 6, Difficulty: 3}).Error)

	w, resp := doJSON(t, router, http.MethodPost, "/questions/search", map[string]any{"searchTerm": "WHICH"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp["total_questions"])
	assert.Len(t, resp["questions"], 1)

	w, resp = doJSON(t, router, http.MethodPost, "/questions/search", map[string]any{"searchTerm": "question"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 12, resp["total_questions"])
	assert.Len(t, resp["questions"], 10)

	// no body searches with an empty term
	w, resp = doJSON(t, router, http.MethodPost, "/questions/search", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 13, resp["total_questions"])

	w, resp = doJSON(t, router, http.MethodPost, "/questions/search", `{"searchTerm": `)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assertError(t, resp, 422, "unprocessable")

	w, resp = doJSON(t, router, http.MethodPost, "/questions/search", map[string]any{"searchTerm": "1TGH9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertError(t, resp, 404, "resource not found")
}

func TestGetQuestionsByCategoryHandler(t *testing.T) {
	router, db := setupRouter(t)
	seedQuestions(t, db, 2, 3)
	seedQuestions(t, db, 3, 2)

	w, resp := doJSON(t, router, http.MethodGet, "/categories/2/questions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Art", resp["current_category"])
	assert.EqualValues(t, 3, resp["total_questions"])
	for _, q := range resp["questions"].([]any) {
		assert.EqualValues(t, 2, q.(map[string]any)["category"])
	}

	w, resp = doJSON(t, router, http.MethodGet, "/categories/500/questions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertError(t, resp, 404, "resource not found")
}

func TestGetQuestionsByCategoryHandlerServerError(t *testing.T) {
	router, db := setupRouter(t)
	require.NoError(t, db.Migrator().DropTable(&models.Question{}))

	w, resp := doJSON(t, router, http.MethodGet, "/categories/1/questions", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertError(t, resp, 500, "Internal Server Error")
}

func TestQuizHandler(t *testing.T) {
	router, db := setupRouter(t)
	ids := seedQuestions(t, db, 2, 2)

	w, resp := doJSON(t, router, http.MethodPost, "/quizzes", map[string]any{
		"previous_questions": []uint{ids[0]},
		"quiz_category":      map[string]any{"type": "Art", "id": "2"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, ids[1], resp["question"].(map[string]any)["id"])

	w, resp = doJSON(t, router, http.MethodPost, "/quizzes", map[string]any{
		"previous_questions": ids,
		"quiz_category":      map[string]any{"type": "Art", "id": 2},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Contains(t, resp, "question")
	assert.Nil(t, resp["question"])
}

func TestQuizHandlerRejects(t *testing.T) {
	router, _ := setupRouter(t)

	bodies := map[string]any{
		"missing category": map[string]any{"previous_questions": []int{}},
		"missing id":       map[string]any{"previous_questions": []int{}, "quiz_category": map[string]any{"type": "Art"}},
		"null id":          map[string]any{"quiz_category": map[string]any{"id": nil}},
		"malformed":        `{"quiz_category": {`,
	}
	for name, body := range bodies {
		w, resp := doJSON(t, router, http.MethodPost, "/quizzes", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, name)
		assertError(t, resp, 422, "unprocessable")
	}
}
