// Package quiz implements the quiz attempt lifecycle and auto-grading.
package quiz

import (
	"fmt"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// Grader starts and grades quiz attempts. It holds no state besides its clock.
type Grader struct {
	now func() time.Time
}

func NewGrader() *Grader {
	return NewGraderWithClock(time.Now)
}

// NewGraderWithClock allows deterministic timestamps in tests.
func NewGraderWithClock(now func() time.Time) *Grader {
	return &Grader{now: now}
}

// Submission is the outcome of grading an attempt.
type Submission struct {
	Attempt domain.QuizAttempt               `json:"attempt"`
	Results map[string]domain.QuestionResult `json:"gradedAnswers"`
	Item    domain.ScoredItem                `json:"grade"`
}

// Start opens a new attempt numbered after the prior ones.
func (g *Grader) Start(quiz domain.Quiz, enrollmentID string, priorAttempts int) (domain.QuizAttempt, error) {
	if quiz.AttemptsAllowed != nil && priorAttempts >= *quiz.AttemptsAllowed {
		return domain.QuizAttempt{}, fmt.Errorf("%w: %d of %d used", domain.ErrAttemptLimitExceeded, priorAttempts, *quiz.AttemptsAllowed)
	}
	return domain.QuizAttempt{
		QuizID:         quiz.ID,
		EnrollmentID:   enrollmentID,
		AttemptNumber:  priorAttempts + 1,
		StartedAt:      g.now(),
		PossiblePoints: quiz.TotalPoints(),
	}, nil
}

// Submit grades answers for a started attempt. The given attempt is not
// modified; on any error nothing is graded and the attempt stays open.
func (g *Grader) Submit(quiz domain.Quiz, attempt domain.QuizAttempt, answers map[string]domain.Answer) (Submission, error) {
	if attempt.SubmittedAt != nil {
		return Submission{}, domain.ErrAlreadySubmitted
	}
	now := g.now()
	if quiz.TimeLimitMinutes != nil {
		elapsed := now.Sub(attempt.StartedAt).Minutes()
		if elapsed > float64(*quiz.TimeLimitMinutes) {
			return Submission{}, fmt.Errorf("%w: %.1f of %d minutes", domain.ErrTimeLimitExceeded, elapsed, *quiz.TimeLimitMinutes)
		}
	}

	results := make(map[string]domain.QuestionResult, len(quiz.Questions))
	earned := 0.0
	for _, question := range quiz.Questions {
		res, err := gradeQuestion(question, answers[question.ID])
		if err != nil {
			return Submission{}, err
		}
		earned += res.PointsEarned
		results[question.ID] = res
	}

	total := quiz.TotalPoints()
	score := 0.0
	if total > 0 {
		score = 100 * earned / total
	}

	submitted := attempt
	submitted.SubmittedAt = &now
	submitted.Answers = copyAnswers(answers)
	submitted.Results = results
	submitted.EarnedPoints = earned
	submitted.PossiblePoints = total
	submitted.Score = score

	return Submission{
		Attempt: submitted,
		Results: results,
		Item: domain.ScoredItem{
			EnrollmentID:   attempt.EnrollmentID,
			Category:       domain.CategoryQuiz,
			EarnedPoints:   earned,
			PossiblePoints: total,
			Source:         quiz.ID,
			RecordedAt:     now,
		},
	}, nil
}

// Review returns the graded answers of a submitted attempt.
func Review(attempt domain.QuizAttempt) (map[string]domain.QuestionResult, error) {
	if attempt.SubmittedAt == nil {
		return nil, domain.ErrNotSubmitted
	}
	return attempt.Results, nil
}

func gradeQuestion(q domain.Question, answer domain.Answer) (domain.QuestionResult, error) {
	res := domain.QuestionResult{
		StudentAnswer:  answer,
		CorrectAnswer:  q.CorrectAnswer,
		PossiblePoints: q.Points,
		Explanation:    q.Explanation,
	}
	if answer.IsZero() {
		return res, nil
	}

	switch q.Type {
	case domain.SingleChoice, domain.TrueFalse:
		if answer.IsMulti() {
			return res, fmt.Errorf("%w: question %s expects one answer", domain.ErrAnswerTypeMismatch, q.ID)
		}
		res.IsCorrect = answer.Value() == q.CorrectAnswer.Value()
	case domain.MultipleSelect:
		if !answer.IsMulti() {
			return res, fmt.Errorf("%w: question %s expects a set of answers", domain.ErrAnswerTypeMismatch, q.ID)
		}
		res.IsCorrect = answer.SetEqual(q.CorrectAnswer)
	default:
		return res, fmt.Errorf("%w: question %s has unknown type %q", domain.ErrInvalidQuestion, q.ID, q.Type)
	}

	if res.IsCorrect {
		res.PointsEarned = q.Points
	}
	return res, nil
}

func copyAnswers(in map[string]domain.Answer) map[string]domain.Answer {
	out := make(map[string]domain.Answer, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
