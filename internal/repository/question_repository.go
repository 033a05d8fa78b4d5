package repository

import (
	"errors"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Answers").First(&question, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByLesson returns every question of a lesson with its answers.
// Ordering and filtering are the query engine's concern.
func (r *QuestionRepository) FindByLesson(lessonID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Answers").
		Where("lesson_id = ?", lessonID).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// IncrementUpvotes adds exactly one vote with a single UPDATE so concurrent
// votes never lose increments.
func (r *QuestionRepository) IncrementUpvotes(questionID string) (*model.Question, error) {
	result := r.DB.Model(&model.Question{}).
		Where("id = ?", questionID).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, util.ErrQuestionNotFound
	}
	return r.FindByID(questionID)
}

func (r *QuestionRepository) IncrementViews(questionID string) error {
	return r.DB.Model(&model.Question{}).
		Where("id = ?", questionID).
		Update("views", gorm.Expr("views + 1")).
		Error
}
