package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category is a question category. Categories are seeded and read-only
// through the API.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Type string `json:"type" gorm:"not null"`
}

// Question is a trivia question. Category references Category.ID but is not
// a foreign key; questions pointing at a missing category are allowed.
type Question struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Question   string `json:"question" gorm:"type:text;not null"`
	Answer     string `json:"answer" gorm:"type:text;not null"`
	Category   int    `json:"category" gorm:"index"`
	Difficulty int    `json:"difficulty"`
}

// QuestionRecord is the formatted representation of a Question.
type QuestionRecord struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Format returns the plain record served over the API.
func (q *Question) Format() QuestionRecord {
	return QuestionRecord{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// CategoryMap is the {id: type} mapping returned by category endpoints.
type CategoryMap map[uint]string

// CategoryMapOf builds the mapping for the given categories.
func CategoryMapOf(categories []Category) CategoryMap {
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// LooseInt decodes from a JSON number or a numeric JSON string. Clients send
// category ids both ways. null decodes to zero.
type LooseInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("not an integer: %s", data)
		}
		v = int(f)
	}
	*n = LooseInt(v)
	return nil
}
