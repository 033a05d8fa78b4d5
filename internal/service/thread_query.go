package service

import (
	"sort"
	"strings"

	"lesson_qa_backend/internal/model"
)

// Read-only views over thread sets. Nothing in this file touches storage;
// callers pass in whatever the repository returned.

type ThreadStatus string

const (
	StatusAll        ThreadStatus = "all"
	StatusUnresolved ThreadStatus = "unresolved"
	StatusResolved   ThreadStatus = "resolved"
)

type ThreadSort string

const (
	SortRecent       ThreadSort = "recent"
	SortMostAnswered ThreadSort = "mostAnswered"
)

// SearchQuestions keeps questions whose title or content contains the query,
// case-insensitively. An empty query is the identity filter.
func SearchQuestions(questions []model.Question, query string) []model.Question {
	query = strings.TrimSpace(query)
	if query == "" {
		return questions
	}
	needle := strings.ToLower(query)

	matched := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		haystack := strings.ToLower(q.Title + q.Content)
		if strings.Contains(haystack, needle) {
			matched = append(matched, q)
		}
	}
	return matched
}

// FilterByStatus partitions questions on their resolved flag. StatusAll and
// unknown values are the identity.
func FilterByStatus(questions []model.Question, status ThreadStatus) []model.Question {
	switch status {
	case StatusUnresolved, StatusResolved:
	default:
		return questions
	}

	wantResolved := status == StatusResolved
	matched := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsResolved == wantResolved {
			matched = append(matched, q)
		}
	}
	return matched
}

// OrderAnswers sorts the accepted answer first, then by upvotes descending.
// The sort must be stable: equal-upvote answers keep their insertion order.
func OrderAnswers(answers []model.Answer) []model.Answer {
	ordered := make([]model.Answer, len(answers))
	copy(ordered, answers)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsAccepted != ordered[j].IsAccepted {
			return ordered[i].IsAccepted
		}
		return ordered[i].Upvotes > ordered[j].Upvotes
	})
	return ordered
}

// OrderQuestions orders threads for listing: recent by creation time
// descending, mostAnswered by answer count descending. Unknown keys fall back
// to recent.
func OrderQuestions(questions []model.Question, key ThreadSort) []model.Question {
	ordered := make([]model.Question, len(questions))
	copy(ordered, questions)

	switch key {
	case SortMostAnswered:
		sort.SliceStable(ordered, func(i, j int) bool {
			return len(ordered[i].Answers) > len(ordered[j].Answers)
		})
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		})
	}
	return ordered
}
