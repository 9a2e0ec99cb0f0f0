package trivia

import "github.com/Aidin1998/trivia/pkg/models"

// CreateQuestionRequest is the body of POST /questions. Every field must be
// present and non-zero.
type CreateQuestionRequest struct {
	Question   string          `json:"question" validate:"required"`
	Answer     string          `json:"answer" validate:"required"`
	Category   models.LooseInt `json:"category" validate:"required"`
	Difficulty models.LooseInt `json:"difficulty" validate:"required"`
}

// SearchRequest is the body of POST /questions/search. A missing term
// matches every question.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizCategory identifies the category a quiz draws from. ID 0 is matched
// literally, not as "all categories".
type QuizCategory struct {
	ID   *models.LooseInt `json:"id"`
	Type string           `json:"type,omitempty"`
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	QuizCategory      *QuizCategory     `json:"quiz_category"`
	PreviousQuestions []models.LooseInt `json:"previous_questions"`
}

// QuestionPage is one page of questions plus the size of the full set.
type QuestionPage struct {
	Questions []models.QuestionRecord
	Total     int
}

// QuestionListing is the GET /questions result.
type QuestionListing struct {
	QuestionPage
	Categories models.CategoryMap
}

// CategoryQuestions is the GET /categories/:id/questions result.
type CategoryQuestions struct {
	QuestionPage
	CurrentCategory string
}

// CreatedQuestion is the POST /questions result.
type CreatedQuestion struct {
	QuestionPage
	ID uint
}

func formatAll(questions []models.Question) []models.QuestionRecord {
	records := make([]models.QuestionRecord, 0, len(questions))
	for i := range questions {
		records = append(records, questions[i].Format())
	}
	return records
}

func pageOf(page int, questions []models.Question) QuestionPage {
	return QuestionPage{
		Questions: Paginate(page, formatAll(questions)),
		Total:     len(questions),
	}
}
