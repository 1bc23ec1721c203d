package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/logger"
	"github.com/sithvalentine/wealth-builder-mvp/internal/networth"
)

// WealthService records net-worth snapshots and reports growth.
type WealthService struct {
	snapshots WealthRepository
	roster    RosterRepository
	now       func() time.Time
	log       *logger.Logger
}

func NewWealthService(snapshots WealthRepository, roster RosterRepository, log *logger.Logger) *WealthService {
	if log == nil {
		log = logger.Nop()
	}
	return &WealthService{snapshots: snapshots, roster: roster, now: time.Now, log: log.With("service", "wealth")}
}

// SnapshotInput is a learner-submitted balance sheet. A zero RecordDate means now.
type SnapshotInput struct {
	RecordDate     time.Time          `json:"recordDate" yaml:"recordDate"`
	Assets         map[string]float64 `json:"assets" yaml:"assets"`
	Liabilities    map[string]float64 `json:"liabilities" yaml:"liabilities"`
	Notes          string             `json:"notes,omitempty" yaml:"notes"`
	IsHypothetical bool               `json:"isHypothetical" yaml:"isHypothetical"`
}

// RecordedSnapshot is a stored snapshot and its growth versus the preceding one.
type RecordedSnapshot struct {
	Snapshot domain.WealthSnapshot `json:"entry"`
	Growth   *networth.Growth      `json:"growth"`
}

// History is a date-bounded list of snapshots with its summary.
type History struct {
	Entries []domain.WealthSnapshot `json:"entries"`
	Summary networth.Summary        `json:"summary"`
}

// Record computes totals, stores the snapshot and compares it with the
// latest earlier snapshot of the same enrollment.
func (s *WealthService) Record(ctx context.Context, enrollmentID string, in SnapshotInput) (RecordedSnapshot, error) {
	date := in.RecordDate
	if date.IsZero() {
		date = s.now()
	}
	snap, err := networth.NewSnapshot(enrollmentID, date, in.Assets, in.Liabilities)
	if err != nil {
		return RecordedSnapshot{}, err
	}
	if _, err := s.roster.GetEnrollment(ctx, enrollmentID); err != nil {
		return RecordedSnapshot{}, err
	}
	snap.ID = uuid.NewString()
	snap.Notes = in.Notes
	snap.IsHypothetical = in.IsHypothetical

	history, err := s.snapshots.ListSnapshots(ctx, enrollmentID, time.Time{}, time.Time{})
	if err != nil {
		return RecordedSnapshot{}, fmt.Errorf("list snapshots: %w", err)
	}
	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		return RecordedSnapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	s.log.Info("snapshot recorded", "snapshot", snap.ID, "enrollment", enrollmentID, "netWorth", snap.NetWorth)
	return RecordedSnapshot{Snapshot: snap, Growth: networth.GrowthFromHistory(history, snap)}, nil
}

// Get returns one snapshot of the enrollment.
func (s *WealthService) Get(ctx context.Context, enrollmentID, snapshotID string) (domain.WealthSnapshot, error) {
	snap, err := s.snapshots.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return domain.WealthSnapshot{}, err
	}
	if snap.EnrollmentID != enrollmentID {
		return domain.WealthSnapshot{}, domain.ErrSnapshotNotFound
	}
	return snap, nil
}

// History lists snapshots dated within [from, to]; zero bounds are open.
func (s *WealthService) History(ctx context.Context, enrollmentID string, from, to time.Time) (History, error) {
	entries, err := s.snapshots.ListSnapshots(ctx, enrollmentID, from, to)
	if err != nil {
		return History{}, fmt.Errorf("list snapshots: %w", err)
	}
	networth.SortByDate(entries)
	if entries == nil {
		entries = []domain.WealthSnapshot{}
	}
	return History{Entries: entries, Summary: networth.Summarize(entries)}, nil
}

// Analytics summarises every actual snapshot. It returns nil when there are none.
func (s *WealthService) Analytics(ctx context.Context, enrollmentID string) (*networth.Analytics, error) {
	entries, err := s.snapshots.ListSnapshots(ctx, enrollmentID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return networth.Analyze(entries), nil
}

// Delete removes one snapshot of the enrollment.
func (s *WealthService) Delete(ctx context.Context, enrollmentID, snapshotID string) error {
	if _, err := s.Get(ctx, enrollmentID, snapshotID); err != nil {
		return err
	}
	if err := s.snapshots.DeleteSnapshot(ctx, snapshotID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	s.log.Info("snapshot deleted", "snapshot", snapshotID, "enrollment", enrollmentID)
	return nil
}
