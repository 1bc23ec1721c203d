package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func (s *Store) SaveClass(ctx context.Context, class domain.Class) error {
	_, err := s.db.NewInsert().
		Model(toClassModel(class)).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("weight_projects = EXCLUDED.weight_projects").
		Set("weight_quiz = EXCLUDED.weight_quiz").
		Set("weight_participation = EXCLUDED.weight_participation").
		Set("weight_real_world = EXCLUDED.weight_real_world").
		Exec(ctx)
	return err
}

func (s *Store) GetClass(ctx context.Context, classID string) (domain.Class, error) {
	m := new(classModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", classID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Class{}, domain.ErrClassNotFound
	}
	if err != nil {
		return domain.Class{}, err
	}
	return m.toDomain(), nil
}

func (s *Store) SaveEnrollment(ctx context.Context, e domain.Enrollment) error {
	exists, err := s.db.NewSelect().Model((*classModel)(nil)).Where("id = ?", e.ClassID).Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrClassNotFound
	}
	_, err = s.db.NewInsert().Model(&enrollmentModel{ID: e.ID, StudentID: e.StudentID, ClassID: e.ClassID}).Exec(ctx)
	return err
}

func (s *Store) GetEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
	m := new(enrollmentModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", enrollmentID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Enrollment{}, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return domain.Enrollment{}, err
	}
	return domain.Enrollment{ID: m.ID, StudentID: m.StudentID, ClassID: m.ClassID}, nil
}

func (s *Store) ListEnrollments(ctx context.Context, classID string) ([]domain.Enrollment, error) {
	var rows []enrollmentModel
	if err := s.db.NewSelect().Model(&rows).Where("class_id = ?", classID).Order("student_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Enrollment, len(rows))
	for i, m := range rows {
		out[i] = domain.Enrollment{ID: m.ID, StudentID: m.StudentID, ClassID: m.ClassID}
	}
	return out, nil
}

func (s *Store) RecordGrade(ctx context.Context, item domain.ScoredItem) error {
	_, err := s.db.NewInsert().Model(toGradeModel(item)).Exec(ctx)
	return err
}

func (s *Store) ListGrades(ctx context.Context, enrollmentID string) ([]domain.ScoredItem, error) {
	var rows []gradeModel
	if err := s.db.NewSelect().Model(&rows).Where("enrollment_id = ?", enrollmentID).Order("recorded_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.ScoredItem, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}
