package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/repository"
	"lesson_qa_backend/internal/util"
	"lesson_qa_backend/pkg/logger"
	"lesson_qa_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// QAService is the only surface the HTTP layer calls. It validates input,
// checks roles and delegates every mutation to the repositories.
type QAService struct {
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	Redis        *redis.Client
}

func NewQAService(
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	rdb *redis.Client,
) *QAService {
	return &QAService{
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		Redis:        rdb,
	}
}

type QuestionRequest struct {
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	AttachmentURL string `json:"attachmentUrl"`
}

type AnswerRequest struct {
	Content       string `json:"content" binding:"required"`
	AttachmentURL string `json:"attachmentUrl"`
}

// ThreadResponse is a question with its ordered answers and derived counts.
type ThreadResponse struct {
	ID               string         `json:"id"`
	LessonID         string         `json:"lessonId"`
	UserID           uint           `json:"userId"`
	UserName         string         `json:"userName"`
	UserType         model.UserRole `json:"userType"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	AttachmentURL    string         `json:"attachmentUrl,omitempty"`
	Upvotes          int            `json:"upvotes"`
	Views            int            `json:"views"`
	IsResolved       bool           `json:"isResolved"`
	AcceptedAnswerID *string        `json:"acceptedAnswerId"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	TotalAnswers     int            `json:"totalAnswers"`
	Answers          []model.Answer `json:"answers"`
}

func newThreadResponse(q *model.Question) *ThreadResponse {
	return &ThreadResponse{
		ID:               q.ID,
		LessonID:         q.LessonID,
		UserID:           q.UserID,
		UserName:         q.UserName,
		UserType:         q.UserType,
		Title:            q.Title,
		Content:          q.Content,
		AttachmentURL:    q.AttachmentURL,
		Upvotes:          q.Upvotes,
		Views:            q.Views,
		IsResolved:       q.IsResolved,
		AcceptedAnswerID: q.AcceptedAnswerID,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
		TotalAnswers:     len(q.Answers),
		Answers:          OrderAnswers(q.Answers),
	}
}

func (s *QAService) CreateQuestion(actor *util.Claims, lessonID string, req QuestionRequest) (*ThreadResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, util.ErrTitleRequired
	}
	if content == "" {
		return nil, util.ErrContentRequired
	}

	question := &model.Question{
		LessonID:      lessonID,
		UserID:        actor.UserID,
		UserName:      actor.Name,
		UserType:      actor.Role,
		Title:         title,
		Content:       content,
		AttachmentURL: req.AttachmentURL,
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}

	return newThreadResponse(question), nil
}

func (s *QAService) AnswerQuestion(actor *util.Claims, questionID string, req AnswerRequest) (*model.Answer, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, util.ErrContentRequired
	}

	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID:    questionID,
		UserID:        actor.UserID,
		UserName:      actor.Name,
		UserType:      actor.Role,
		Content:       content,
		AttachmentURL: req.AttachmentURL,
	}

	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, err
	}

	return answer, nil
}

// GetThread returns one thread and bumps its view count, deduplicated per
// viewer (or per IP for anonymous readers) through Redis for 10 minutes.
func (s *QAService) GetThread(questionID string, viewerID uint, ip string) (*ThreadResponse, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var viewerKey string
		if viewerID > 0 {
			viewerKey = fmt.Sprintf("question_v:%s:u:%d", questionID, viewerID)
		} else {
			viewerKey = fmt.Sprintf("question_v:%s:ip:%s", questionID, ip)
		}

		isNewVisit, _ := s.Redis.SetNX(context.Background(), viewerKey, "1", 10*time.Minute).Result()
		if isNewVisit {
			go s.bumpViews(questionID)
			question.Views++
		}
	}

	return newThreadResponse(question), nil
}

// bumpViews runs off the request path; the read already succeeded, so a
// failed bump is only worth a log line.
func (s *QAService) bumpViews(questionID string) {
	if err := s.QuestionRepo.IncrementViews(questionID); err != nil {
		logger.Log.Error("Failed to increment view count",
			zap.String("question_id", questionID),
			zap.Error(err),
		)
	}
}

// ListThreads loads a lesson's threads and applies search, status filter and
// ordering in memory.
func (s *QAService) ListThreads(lessonID, query string, status ThreadStatus, sortKey ThreadSort) ([]*ThreadResponse, error) {
	questions, err := s.QuestionRepo.FindByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	questions = SearchQuestions(questions, query)
	questions = FilterByStatus(questions, status)
	questions = OrderQuestions(questions, sortKey)

	threads := make([]*ThreadResponse, len(questions))
	for i := range questions {
		threads[i] = newThreadResponse(&questions[i])
	}
	return threads, nil
}

func (s *QAService) UpvoteQuestion(questionID string) (*model.Question, error) {
	return s.QuestionRepo.IncrementUpvotes(questionID)
}

func (s *QAService) UpvoteAnswer(answerID string) (*model.Answer, error) {
	return s.AnswerRepo.IncrementUpvotes(answerID)
}

// AcceptAnswer resolves the owning question around answerID. Only instructors
// may accept; re-accepting with a different answer switches the accepted one.
func (s *QAService) AcceptAnswer(actor *util.Claims, answerID string) (*ThreadResponse, error) {
	if actor.Role != model.Instructor {
		return nil, util.ErrPermissionDenied
	}

	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		return nil, err
	}

	if err := s.AnswerRepo.Accept(answer.QuestionID, answerID); err != nil {
		return nil, err
	}
	monitoring.AcceptedAnswers.Inc()

	question, err := s.QuestionRepo.FindByID(answer.QuestionID)
	if err != nil {
		return nil, err
	}
	return newThreadResponse(question), nil
}
