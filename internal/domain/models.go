package domain

import (
	"fmt"
	"time"
)

// Category is a grading bucket with its own weight.
type Category string

const (
	CategoryProjects      Category = "Projects"
	CategoryQuiz          Category = "Quiz"
	CategoryParticipation Category = "Participation"
	CategoryRealWorld     Category = "RealWorld"
)

// Categories lists every grading category in reporting order.
var Categories = []Category{CategoryProjects, CategoryQuiz, CategoryParticipation, CategoryRealWorld}

// ParseCategory validates a category name against the closed set.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryProjects, CategoryQuiz, CategoryParticipation, CategoryRealWorld:
		return true
	}
	return false
}

// ScoredItem is one graded unit of work. It is never mutated once recorded.
type ScoredItem struct {
	ID             string    `json:"id,omitempty"`
	EnrollmentID   string    `json:"enrollmentId,omitempty"`
	Category       Category  `json:"category"`
	EarnedPoints   float64   `json:"earnedPoints"`
	PossiblePoints float64   `json:"possiblePoints"`
	Source         string    `json:"source,omitempty"` // originating quiz id, if any
	RecordedAt     time.Time `json:"recordedAt"`
}

// NewScoredItem validates a freshly graded item.
func NewScoredItem(category string, earned, possible float64) (ScoredItem, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return ScoredItem{}, err
	}
	if earned < 0 {
		return ScoredItem{}, fmt.Errorf("%w: earned points %v is negative", ErrInvalidScore, earned)
	}
	if possible <= 0 {
		return ScoredItem{}, fmt.Errorf("%w: possible points must be positive, got %v", ErrInvalidScore, possible)
	}
	return ScoredItem{Category: c, EarnedPoints: earned, PossiblePoints: possible}, nil
}

// CategoryWeights carries the weight (percentage points) of every category.
// Weights need not sum to 100.
type CategoryWeights struct {
	Projects      float64 `json:"projects" yaml:"projects"`
	Quiz          float64 `json:"quiz" yaml:"quiz"`
	Participation float64 `json:"participation" yaml:"participation"`
	RealWorld     float64 `json:"realWorld" yaml:"realWorld"`
}

// DefaultCategoryWeights is the stock 40/30/20/10 split used when seeding a class.
var DefaultCategoryWeights = CategoryWeights{Projects: 40, Quiz: 30, Participation: 20, RealWorld: 10}

func NewCategoryWeights(projects, quiz, participation, realWorld float64) (CategoryWeights, error) {
	w := CategoryWeights{Projects: projects, Quiz: quiz, Participation: participation, RealWorld: realWorld}
	return w, w.Validate()
}

func (w CategoryWeights) Validate() error {
	for _, c := range Categories {
		if v := w.For(c); v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, c, v)
		}
	}
	return nil
}

// For returns the weight of a category; unknown categories weigh nothing.
func (w CategoryWeights) For(c Category) float64 {
	switch c {
	case CategoryProjects:
		return w.Projects
	case CategoryQuiz:
		return w.Quiz
	case CategoryParticipation:
		return w.Participation
	case CategoryRealWorld:
		return w.RealWorld
	}
	return 0
}

// Class is a teaching group with its grading configuration.
type Class struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Weights CategoryWeights `json:"weights"`
}

// Enrollment ties a student to a class. Grades, attempts, budgets and
// wealth snapshots are all scoped to an enrollment.
type Enrollment struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	ClassID   string `json:"classId"`
}
