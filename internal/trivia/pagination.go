package trivia

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QuestionsPerPage is the fixed page size of every paginated listing.
const QuestionsPerPage = 10

// Paginate returns the 1-based page of records. Pages outside the list,
// including page < 1, are empty.
func Paginate[T any](page int, records []T) []T {
	if page < 1 || page-1 > len(records)/QuestionsPerPage {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(records) {
		return []T{}
	}
	end := min(start+QuestionsPerPage, len(records))
	return records[start:end]
}

// PageFromQuery reads the page query parameter. Missing or non-integer
// values select the first page.
func PageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}
