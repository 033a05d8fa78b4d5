package repository

import (
	"testing"

	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnswerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `answers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	answer := &model.Answer{QuestionID: "q1", Content: "try context.WithTimeout"}
	err := repo.Create(answer)

	require.NoError(t, err)
	assert.NotEmpty(t, answer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerRepositoryIncrementUpvotes(t *testing.T) {
	t.Run("zero rows means the answer is gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnswerRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `answers` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := repo.IncrementUpvotes("gone")

		assert.ErrorIs(t, err, util.ErrAnswerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bumps and reloads", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnswerRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `answers` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery("SELECT \\* FROM `answers` WHERE id = \\?").
			WithArgs("a1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "upvotes"}).AddRow("a1", 7))

		answer, err := repo.IncrementUpvotes("a1")

		require.NoError(t, err)
		assert.Equal(t, 7, answer.Upvotes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnswerRepositoryAccept(t *testing.T) {
	t.Run("locks the question, clears rivals, resolves", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnswerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\? AND `questions`.`deleted_at` IS NULL.*FOR UPDATE").
			WithArgs("q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("q1"))
		mock.ExpectQuery("SELECT \\* FROM `answers` WHERE \\(id = \\? AND question_id = \\?\\)").
			WithArgs("a2", "q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "question_id"}).AddRow("a2", "q1"))
		// Any previously accepted answer loses the flag first.
		mock.ExpectExec("UPDATE `answers` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `answers` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `questions` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Accept("q1", "a2")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("answer from another question rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnswerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\? AND `questions`.`deleted_at` IS NULL.*FOR UPDATE").
			WithArgs("q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("q1"))
		mock.ExpectQuery("SELECT \\* FROM `answers` WHERE \\(id = \\? AND question_id = \\?\\)").
			WithArgs("a9", "q1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.Accept("q1", "a9")

		assert.ErrorIs(t, err, util.ErrAnswerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vanished question rolls back before touching answers", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAnswerRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `questions` WHERE id = \\? AND `questions`.`deleted_at` IS NULL.*FOR UPDATE").
			WithArgs("gone", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.Accept("gone", "a2")

		assert.ErrorIs(t, err, util.ErrQuestionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
