package repository

import (
	"errors"
	"time"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *AnswerRepository) FindByID(id string) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.First(&answer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// IncrementUpvotes adds exactly one vote with a single UPDATE so concurrent
// votes never lose increments.
func (r *AnswerRepository) IncrementUpvotes(answerID string) (*model.Answer, error) {
	result := r.DB.Model(&model.Answer{}).
		Where("id = ?", answerID).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, util.ErrAnswerNotFound
	}
	return r.FindByID(answerID)
}

// Accept marks answerID as the accepted answer of questionID and resolves the
// question. The whole transition runs in one transaction with the question row
// locked first, so concurrent accepts on the same question serialize on a
// single lock and at most one answer ever carries the accepted flag. Switching
// the accepted answer of an already resolved question reuses the same path;
// nothing ever clears is_resolved.
func (r *AnswerRepository) Accept(questionID, answerID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var question model.Question
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&question, "id = ?", questionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		if err != nil {
			return err
		}

		var answer model.Answer
		err = tx.First(&answer, "id = ? AND question_id = ?", answerID, questionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAnswerNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()

		// Clear every other accepted flag before setting the new one.
		if err := tx.Model(&model.Answer{}).
			Where("question_id = ? AND id <> ? AND is_accepted = ?", questionID, answerID, true).
			Updates(map[string]interface{}{"is_accepted": false, "accepted_at": nil}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Answer{}).
			Where("id = ?", answerID).
			Updates(map[string]interface{}{"is_accepted": true, "accepted_at": now}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Question{}).
			Where("id = ?", questionID).
			Updates(map[string]interface{}{
				"is_resolved":        true,
				"accepted_answer_id": answerID,
				"resolved_at":        now,
			}).Error
	})
}
