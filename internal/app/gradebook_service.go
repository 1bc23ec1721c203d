package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/grading"
	"github.com/sithvalentine/wealth-builder-mvp/internal/logger"
)

// reportConcurrency bounds the per-student reports computed at once.
const reportConcurrency = 8

// GradebookService manages classes, enrollments and weighted grades.
type GradebookService struct {
	roster   RosterRepository
	grades   GradeRepository
	defaults domain.CategoryWeights
	now      func() time.Time
	log      *logger.Logger
}

func NewGradebookService(roster RosterRepository, grades GradeRepository, defaults domain.CategoryWeights, log *logger.Logger) *GradebookService {
	if log == nil {
		log = logger.Nop()
	}
	return &GradebookService{
		roster:   roster,
		grades:   grades,
		defaults: defaults,
		now:      time.Now,
		log:      log.With("service", "gradebook"),
	}
}

// CreateClass stores a new class. Nil weights fall back to the configured defaults.
func (s *GradebookService) CreateClass(ctx context.Context, name string, weights *domain.CategoryWeights) (domain.Class, error) {
	w := s.defaults
	if weights != nil {
		w = *weights
	}
	if err := w.Validate(); err != nil {
		return domain.Class{}, err
	}
	class := domain.Class{ID: uuid.NewString(), Name: name, Weights: w}
	if err := s.roster.SaveClass(ctx, class); err != nil {
		return domain.Class{}, fmt.Errorf("save class: %w", err)
	}
	s.log.Info("class created", "class", class.ID, "name", name)
	return class, nil
}

// SetClassWeights replaces the grading weights of a class.
func (s *GradebookService) SetClassWeights(ctx context.Context, classID string, weights domain.CategoryWeights) (domain.Class, error) {
	if err := weights.Validate(); err != nil {
		return domain.Class{}, err
	}
	class, err := s.roster.GetClass(ctx, classID)
	if err != nil {
		return domain.Class{}, err
	}
	class.Weights = weights
	if err := s.roster.SaveClass(ctx, class); err != nil {
		return domain.Class{}, fmt.Errorf("save class: %w", err)
	}
	s.log.Info("class weights updated", "class", classID, "weights", weights)
	return class, nil
}

// Enroll adds a student to a class.
func (s *GradebookService) Enroll(ctx context.Context, classID, studentID string) (domain.Enrollment, error) {
	if _, err := s.roster.GetClass(ctx, classID); err != nil {
		return domain.Enrollment{}, err
	}
	e := domain.Enrollment{ID: uuid.NewString(), StudentID: studentID, ClassID: classID}
	if err := s.roster.SaveEnrollment(ctx, e); err != nil {
		return domain.Enrollment{}, fmt.Errorf("save enrollment: %w", err)
	}
	return e, nil
}

// RecordGrade validates and appends a scored item to an enrollment.
func (s *GradebookService) RecordGrade(ctx context.Context, enrollmentID, category string, earned, possible float64, source string) (domain.ScoredItem, error) {
	item, err := domain.NewScoredItem(category, earned, possible)
	if err != nil {
		return domain.ScoredItem{}, err
	}
	if _, err := s.roster.GetEnrollment(ctx, enrollmentID); err != nil {
		return domain.ScoredItem{}, err
	}
	item.ID = uuid.NewString()
	item.EnrollmentID = enrollmentID
	item.Source = source
	item.RecordedAt = s.now()
	if err := s.grades.RecordGrade(ctx, item); err != nil {
		return domain.ScoredItem{}, fmt.Errorf("record grade: %w", err)
	}
	s.log.Info("grade recorded", "enrollment", enrollmentID, "category", item.Category, "earned", earned, "possible", possible)
	return item, nil
}

// EnrollmentReport is the gradebook of one student in one class.
type EnrollmentReport struct {
	Enrollment domain.Enrollment      `json:"enrollment"`
	Weights    domain.CategoryWeights `json:"weights"`
	grading.Report
}

// ClassReport is every student's report plus the class average.
type ClassReport struct {
	Class        domain.Class       `json:"class"`
	Students     []EnrollmentReport `json:"students"`
	ClassAverage float64            `json:"classAverage"`
}

// EnrollmentReport computes the weighted grade of an enrollment using its class weights.
func (s *GradebookService) EnrollmentReport(ctx context.Context, enrollmentID string) (EnrollmentReport, error) {
	e, err := s.roster.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return EnrollmentReport{}, err
	}
	class, err := s.roster.GetClass(ctx, e.ClassID)
	if err != nil {
		return EnrollmentReport{}, err
	}
	return s.report(ctx, e, class.Weights)
}

func (s *GradebookService) report(ctx context.Context, e domain.Enrollment, weights domain.CategoryWeights) (EnrollmentReport, error) {
	items, err := s.grades.ListGrades(ctx, e.ID)
	if err != nil {
		return EnrollmentReport{}, fmt.Errorf("list grades: %w", err)
	}
	r, err := grading.Compute(items, weights)
	if err != nil {
		return EnrollmentReport{}, fmt.Errorf("enrollment %s: %w", e.ID, err)
	}
	return EnrollmentReport{Enrollment: e, Weights: weights, Report: r}, nil
}

// ClassReport computes every enrollment's report concurrently.
func (s *GradebookService) ClassReport(ctx context.Context, classID string) (ClassReport, error) {
	class, err := s.roster.GetClass(ctx, classID)
	if err != nil {
		return ClassReport{}, err
	}
	enrollments, err := s.roster.ListEnrollments(ctx, classID)
	if err != nil {
		return ClassReport{}, fmt.Errorf("list enrollments: %w", err)
	}

	reports := make([]EnrollmentReport, len(enrollments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)
	for i, e := range enrollments {
		i, e := i, e
		g.Go(func() error {
			r, err := s.report(gctx, e, class.Weights)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ClassReport{}, err
	}

	plain := make([]grading.Report, len(reports))
	for i, r := range reports {
		plain[i] = r.Report
	}
	return ClassReport{Class: class, Students: reports, ClassAverage: grading.ClassAverage(plain)}, nil
}
