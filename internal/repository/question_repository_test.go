package repository

import (
	"testing"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestQuestionRepositoryFindByID(t *testing.T) {
	t.Run("loads question with answers", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewQuestionRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\?").
			WithArgs("q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "title", "content"}).
				AddRow("q1", "lesson-1", "Why nil maps panic", "writing to one panics"))
		mock.ExpectQuery("SELECT \\* FROM `answers` WHERE `answers`.`question_id` = \\?").
			WithArgs("q1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "content"}).
				AddRow("a1", "q1", "reads are fine, writes are not"))

		question, err := repo.FindByID("q1")

		require.NoError(t, err)
		assert.Equal(t, "lesson-1", question.LessonID)
		require.Len(t, question.Answers, 1)
		assert.Equal(t, "a1", question.Answers[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to the domain error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewQuestionRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\?").
			WithArgs("nope", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID("nope")

		assert.ErrorIs(t, err, util.ErrQuestionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuestionRepositoryFindByLesson(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `questions` WHERE lesson_id = \\?").
		WithArgs("lesson-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id"}).
			AddRow("q1", "lesson-1").
			AddRow("q2", "lesson-1"))
	mock.ExpectQuery("SELECT \\* FROM `answers` WHERE `answers`.`question_id` IN \\(\\?,\\?\\)").
		WithArgs("q1", "q2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id"}).
			AddRow("a1", "q2"))

	questions, err := repo.FindByLesson("lesson-1")

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Empty(t, questions[0].Answers)
	require.Len(t, questions[1].Answers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryIncrementUpvotes(t *testing.T) {
	t.Run("bumps the counter in place and reloads", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewQuestionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `questions` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\?").
			WithArgs("q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "upvotes"}).AddRow("q1", 4))
		mock.ExpectQuery("SELECT \\* FROM `answers`").
			WithArgs("q1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		question, err := repo.IncrementUpvotes("q1")

		require.NoError(t, err)
		assert.Equal(t, 4, question.Upvotes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means the question is gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewQuestionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `questions` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := repo.IncrementUpvotes("gone")

		assert.ErrorIs(t, err, util.ErrQuestionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuestionRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `questions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	question := &model.Question{LessonID: "lesson-1", Title: "t", Content: "c"}
	err := repo.Create(question)

	require.NoError(t, err)
	assert.NotEmpty(t, question.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
