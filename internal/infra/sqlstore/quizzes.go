package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// LoadQuiz makes the store usable as a quiz loader behind the quiz caches.
func (s *Store) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	m := new(quizModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", quizID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, err
	}
	return m.Data, nil
}

// SaveQuiz upserts a validated quiz document.
func (s *Store) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	_, err := s.db.NewInsert().
		Model(&quizModel{ID: quiz.ID, Title: quiz.Title, Data: quiz}).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	return err
}

// CreateAttempt relies on the unique (quiz_id, enrollment_id, attempt_number)
// index; a row skipped by the conflict clause means the number is taken.
func (s *Store) CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	res, err := s.db.NewInsert().Model(toAttemptModel(attempt)).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAttemptConflict
	}
	return nil
}

func (s *Store) GetAttempt(ctx context.Context, attemptID string) (domain.QuizAttempt, error) {
	m := new(attemptModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", attemptID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	return m.toDomain(), nil
}

func (s *Store) ListAttempts(ctx context.Context, quizID, enrollmentID string) ([]domain.QuizAttempt, error) {
	var rows []attemptModel
	err := s.db.NewSelect().Model(&rows).
		Where("quiz_id = ?", quizID).
		Where("enrollment_id = ?", enrollmentID).
		Order("attempt_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.QuizAttempt, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// SubmitAttempt writes the graded attempt only while submitted_at is still
// NULL and records the grade in the same transaction.
func (s *Store) SubmitAttempt(ctx context.Context, attempt domain.QuizAttempt, grade domain.ScoredItem) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(toAttemptModel(attempt)).
			Column("submitted_at", "answers", "results", "earned_points", "possible_points", "score").
			WherePK().
			Where("submitted_at IS NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			exists, err := tx.NewSelect().Model((*attemptModel)(nil)).Where("id = ?", attempt.ID).Exists(ctx)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrAttemptNotFound
			}
			return domain.ErrAlreadySubmitted
		}
		_, err = tx.NewInsert().Model(toGradeModel(grade)).Exec(ctx)
		return err
	})
}
