package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func (s *Store) SaveBudget(ctx context.Context, entry domain.BudgetEntry) error {
	_, err := s.db.NewInsert().Model(toBudgetModel(entry)).Exec(ctx)
	return err
}

func (s *Store) GetBudget(ctx context.Context, entryID string) (domain.BudgetEntry, error) {
	m := new(budgetModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", entryID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BudgetEntry{}, domain.ErrBudgetNotFound
	}
	if err != nil {
		return domain.BudgetEntry{}, err
	}
	return m.toDomain(), nil
}

func (s *Store) ListBudgets(ctx context.Context, enrollmentID string) ([]domain.BudgetEntry, error) {
	var rows []budgetModel
	if err := s.db.NewSelect().Model(&rows).Where("enrollment_id = ?", enrollmentID).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.BudgetEntry, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (s *Store) DeleteBudget(ctx context.Context, entryID string) error {
	res, err := s.db.NewDelete().Model((*budgetModel)(nil)).Where("id = ?", entryID).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (s *Store) SaveSnapshot(ctx context.Context, snap domain.WealthSnapshot) error {
	_, err := s.db.NewInsert().Model(toSnapshotModel(snap)).Exec(ctx)
	return err
}

func (s *Store) GetSnapshot(ctx context.Context, snapshotID string) (domain.WealthSnapshot, error) {
	m := new(snapshotModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", snapshotID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WealthSnapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.WealthSnapshot{}, err
	}
	return m.toDomain(), nil
}

func (s *Store) ListSnapshots(ctx context.Context, enrollmentID string, from, to time.Time) ([]domain.WealthSnapshot, error) {
	var rows []snapshotModel
	q := s.db.NewSelect().Model(&rows).Where("enrollment_id = ?", enrollmentID)
	if !from.IsZero() {
		q = q.Where("record_date >= ?", from.UTC())
	}
	if !to.IsZero() {
		q = q.Where("record_date <= ?", to.UTC())
	}
	if err := q.Order("record_date ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.WealthSnapshot, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	res, err := s.db.NewDelete().Model((*snapshotModel)(nil)).Where("id = ?", snapshotID).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrSnapshotNotFound
	}
	return nil
}
