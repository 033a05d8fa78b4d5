package service

import (
	"testing"
	"time"

	"lesson_qa_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func makeQuestion(id, title, content string, resolved bool, createdAt time.Time, answerCount int) model.Question {
	q := model.Question{
		Title:      title,
		Content:    content,
		IsResolved: resolved,
	}
	q.ID = id
	q.CreatedAt = createdAt
	q.Answers = make([]model.Answer, answerCount)
	return q
}

func TestSearchQuestions(t *testing.T) {
	questions := []model.Question{
		makeQuestion("q1", "How do goroutines work?", "I keep leaking them", false, time.Now(), 0),
		makeQuestion("q2", "Channel deadlock", "Two goroutines waiting on each other", false, time.Now(), 0),
		makeQuestion("q3", "Slice capacity", "append grows the backing array", false, time.Now(), 0),
	}

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, SearchQuestions(questions, ""), 3)
		assert.Len(t, SearchQuestions(questions, "   "), 3)
	})

	t.Run("matches title case-insensitively", func(t *testing.T) {
		got := SearchQuestions(questions, "CHANNEL")
		assert.Len(t, got, 1)
		assert.Equal(t, "q2", got[0].ID)
	})

	t.Run("matches content", func(t *testing.T) {
		got := SearchQuestions(questions, "goroutine")
		assert.Len(t, got, 2)
		assert.Equal(t, "q1", got[0].ID)
		assert.Equal(t, "q2", got[1].ID)
	})

	t.Run("matches across the title and content boundary", func(t *testing.T) {
		// Title and content are concatenated with nothing in between.
		got := SearchQuestions(questions, "work?i keep")
		assert.Len(t, got, 1)
		assert.Equal(t, "q1", got[0].ID)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, SearchQuestions(questions, "generics"))
	})
}

func TestFilterByStatus(t *testing.T) {
	questions := []model.Question{
		makeQuestion("q1", "a", "a", false, time.Now(), 0),
		makeQuestion("q2", "b", "b", true, time.Now(), 0),
		makeQuestion("q3", "c", "c", false, time.Now(), 0),
	}

	t.Run("all is identity", func(t *testing.T) {
		assert.Len(t, FilterByStatus(questions, StatusAll), 3)
	})

	t.Run("unknown value is identity", func(t *testing.T) {
		assert.Len(t, FilterByStatus(questions, ThreadStatus("bogus")), 3)
	})

	t.Run("unresolved", func(t *testing.T) {
		got := FilterByStatus(questions, StatusUnresolved)
		assert.Len(t, got, 2)
		assert.Equal(t, "q1", got[0].ID)
		assert.Equal(t, "q3", got[1].ID)
	})

	t.Run("resolved", func(t *testing.T) {
		got := FilterByStatus(questions, StatusResolved)
		assert.Len(t, got, 1)
		assert.Equal(t, "q2", got[0].ID)
	})
}

func TestOrderAnswers(t *testing.T) {
	makeAnswer := func(id string, upvotes int, accepted bool) model.Answer {
		a := model.Answer{Upvotes: upvotes, IsAccepted: accepted}
		a.ID = id
		return a
	}

	t.Run("accepted first then upvotes descending", func(t *testing.T) {
		answers := []model.Answer{
			makeAnswer("a1", 2, false),
			makeAnswer("a2", 5, false),
			makeAnswer("a3", 5, false),
			makeAnswer("a4", 5, true),
		}

		got := OrderAnswers(answers)

		assert.Equal(t, "a4", got[0].ID)
		// a2 and a3 tie on upvotes and must keep their original order.
		assert.Equal(t, "a2", got[1].ID)
		assert.Equal(t, "a3", got[2].ID)
		assert.Equal(t, "a1", got[3].ID)
	})

	t.Run("input slice stays untouched", func(t *testing.T) {
		answers := []model.Answer{
			makeAnswer("a1", 1, false),
			makeAnswer("a2", 9, false),
		}
		OrderAnswers(answers)
		assert.Equal(t, "a1", answers[0].ID)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, OrderAnswers(nil))
	})
}

func TestOrderQuestions(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	questions := []model.Question{
		makeQuestion("q1", "a", "a", false, base, 1),
		makeQuestion("q2", "b", "b", false, base.Add(2*time.Hour), 3),
		makeQuestion("q3", "c", "c", false, base.Add(time.Hour), 3),
	}

	t.Run("recent sorts newest first", func(t *testing.T) {
		got := OrderQuestions(questions, SortRecent)
		assert.Equal(t, []string{"q2", "q3", "q1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("mostAnswered is stable on ties", func(t *testing.T) {
		got := OrderQuestions(questions, SortMostAnswered)
		assert.Equal(t, []string{"q2", "q3", "q1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("unknown key falls back to recent", func(t *testing.T) {
		got := OrderQuestions(questions, ThreadSort("hot"))
		assert.Equal(t, "q2", got[0].ID)
	})
}
