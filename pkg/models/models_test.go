package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseIntUnmarshal(t *testing.T) {
	cases := map[string]LooseInt{
		`3`:     3,
		`"4"`:   4,
		`" 5 "`: 5,
		`2.0`:   2,
		`null`:  0,
		`""`:    0,
		`0`:     0,
	}
	for in, want := range cases {
		var got LooseInt
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}
}

func TestLooseIntRejectsGarbage(t *testing.T) {
	for _, in := range []string{`"art"`, `1.5`, `true`, `[1]`} {
		var got LooseInt
		assert.Error(t, json.Unmarshal([]byte(in), &got), in)
	}
}

func TestQuestionFormat(t *testing.T) {
	q := Question{ID: 9, Question: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci", Category: 2, Difficulty: 3}
	rec := q.Format()

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9,"question":"Who painted the Mona Lisa?","answer":"Leonardo da Vinci","category":2,"difficulty":3}`, string(out))
}

func TestCategoryMapOf(t *testing.T) {
	m := CategoryMapOf([]Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}})

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"Science","2":"Art"}`, string(out))
}
