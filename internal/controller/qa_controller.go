package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/service"
	"lesson_qa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QAController struct {
	QAService      *service.QAService
	StorageService *service.StorageService
}

func NewQAController(qaService *service.QAService, storageService *service.StorageService) *QAController {
	return &QAController{
		QAService:      qaService,
		StorageService: storageService,
	}
}

// @Summary Create a question
// @Description Post a new question on a lesson
// @Tags QA
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path string true "Lesson ID"
// @Param question body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=service.ThreadResponse}
// @Failure 400 {object} util.Response
// @Router /lessons/{lessonId}/questions [post]
func (c *QAController) CreateQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	thread, err := c.QAService.CreateQuestion(user, ctx.Param("lessonId"), req)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Created(ctx, thread)
}

// @Summary List lesson threads
// @Description List, search and filter the question threads of a lesson
// @Tags QA
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param q query string false "Search in title and content"
// @Param status query string false "Thread status" Enums(all, unresolved, resolved) default(all)
// @Param sort query string false "Ordering" Enums(recent, mostAnswered) default(recent)
// @Success 200 {object} util.Response{data=[]service.ThreadResponse}
// @Router /lessons/{lessonId}/questions [get]
func (c *QAController) ListThreads(ctx *gin.Context) {
	lessonID := ctx.Param("lessonId")
	query := ctx.Query("q")
	status := service.ThreadStatus(ctx.DefaultQuery("status", string(service.StatusAll)))
	sortKey := service.ThreadSort(ctx.DefaultQuery("sort", string(service.SortRecent)))

	threads, err := c.QAService.ListThreads(lessonID, query, status, sortKey)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"threads": threads,
		"total":   len(threads),
	})
}

// @Summary Get a thread
// @Description Fetch one question with its ordered answers
// @Tags QA
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} util.Response{data=service.ThreadResponse}
// @Failure 404 {object} util.Response
// @Router /questions/{questionId} [get]
func (c *QAController) GetThread(ctx *gin.Context) {
	var viewerID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		viewerID = user.UserID
	}

	thread, err := c.QAService.GetThread(ctx.Param("questionId"), viewerID, ctx.ClientIP())
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Success(ctx, thread)
}

// @Summary Answer a question
// @Description Post an answer on an existing question
// @Tags QA
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path string true "Question ID"
// @Param answer body service.AnswerRequest true "Answer"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /questions/{questionId}/answers [post]
func (c *QAController) AnswerQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.QAService.AnswerQuestion(user, ctx.Param("questionId"), req)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Created(ctx, answer)
}

// @Summary Upvote a question
// @Tags QA
// @Produce json
// @Param questionId path string true "Question ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /questions/{questionId}/upvote [post]
func (c *QAController) UpvoteQuestion(ctx *gin.Context) {
	question, err := c.QAService.UpvoteQuestion(ctx.Param("questionId"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary Upvote an answer
// @Tags QA
// @Produce json
// @Param answerId path string true "Answer ID"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Router /answers/{answerId}/upvote [post]
func (c *QAController) UpvoteAnswer(ctx *gin.Context) {
	answer, err := c.QAService.UpvoteAnswer(ctx.Param("answerId"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// @Summary Accept an answer
// @Description Instructor-only: mark the answer as accepted and resolve its question
// @Tags QA
// @Produce json
// @Security ApiKeyAuth
// @Param answerId path string true "Answer ID"
// @Success 200 {object} util.Response{data=service.ThreadResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /answers/{answerId}/accept [post]
func (c *QAController) AcceptAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	thread, err := c.QAService.AcceptAnswer(user, ctx.Param("answerId"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	util.Success(ctx, thread)
}

// @Summary Upload an attachment
// @Description Store a file and return the URL to reference from a question or answer
// @Tags QA
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Attachment"
// @Success 201 {object} util.Response{data=map[string]string}
// @Failure 400 {object} util.Response
// @Router /qa/attachments/upload [post]
func (c *QAController) UploadAttachment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExts := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".pdf": true, ".txt": true, ".zip": true,
	}
	if !allowedExts[ext] {
		util.BadRequest(ctx, "unsupported file type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("qa/%s%s", model.GenerateUUID(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"url": url})
}

func (c *QAController) renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTitleRequired), errors.Is(err, util.ErrContentRequired):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrAnswerNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
