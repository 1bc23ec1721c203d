package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType determines how a question is graded.
type QuestionType string

const (
	SingleChoice   QuestionType = "SingleChoice"
	TrueFalse      QuestionType = "TrueFalse"
	MultipleSelect QuestionType = "MultipleSelect"
)

// UnmarshalText accepts the legacy "MultipleChoice" spelling for single-choice questions.
func (t *QuestionType) UnmarshalText(b []byte) error {
	switch s := QuestionType(b); s {
	case SingleChoice, TrueFalse, MultipleSelect:
		*t = s
	case "MultipleChoice":
		*t = SingleChoice
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, string(b))
	}
	return nil
}

// Answer is either a single option or a set of options.
type Answer struct {
	single string
	set    []string
	multi  bool
}

func SingleAnswer(value string) Answer {
	return Answer{single: value}
}

func MultiAnswer(values ...string) Answer {
	return Answer{set: append([]string(nil), values...), multi: true}
}

// AnswerFromValue converts a decoded JSON/YAML value (string, []string or []any) into an Answer.
func AnswerFromValue(v any) (Answer, error) {
	switch t := v.(type) {
	case nil:
		return Answer{}, nil
	case string:
		return SingleAnswer(t), nil
	case []string:
		return MultiAnswer(t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return Answer{}, fmt.Errorf("%w: selections must be strings, got %T", ErrAnswerTypeMismatch, e)
			}
			out = append(out, s)
		}
		return MultiAnswer(out...), nil
	case bool:
		// YAML decodes bare True/False as booleans.
		if t {
			return SingleAnswer("True"), nil
		}
		return SingleAnswer("False"), nil
	default:
		return Answer{}, fmt.Errorf("%w: unsupported answer %T", ErrAnswerTypeMismatch, v)
	}
}

// IsZero reports whether no answer was given.
func (a Answer) IsZero() bool {
	if a.multi {
		return len(a.set) == 0
	}
	return a.single == ""
}

func (a Answer) IsMulti() bool { return a.multi }

func (a Answer) Value() string { return a.single }

func (a Answer) Values() []string { return append([]string(nil), a.set...) }

// SetEqual compares two multi answers as order-independent sets.
func (a Answer) SetEqual(b Answer) bool {
	left, right := toSet(a.set), toSet(b.set)
	if len(left) != len(right) {
		return false
	}
	for k := range left {
		if _, ok := right[k]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.multi:
		if a.set == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.set)
	case a.single == "":
		return []byte("null"), nil
	default:
		return json.Marshal(a.single)
	}
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := AnswerFromValue(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Answer) String() string {
	if a.multi {
		return fmt.Sprint(a.set)
	}
	return a.single
}

// Question is a single auto-gradable quiz question.
type Question struct {
	ID            string       `json:"id"`
	Prompt        string       `json:"questionText"`
	Type          QuestionType `json:"questionType"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Points        float64      `json:"points"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Quiz is a collection of questions plus its attempt policy.
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Questions        []Question `json:"questions"`
	TimeLimitMinutes *int       `json:"timeLimit,omitempty"`
	AttemptsAllowed  *int       `json:"attemptsAllowed,omitempty"`
}

// TotalPoints is the sum of question points.
func (q Quiz) TotalPoints() float64 {
	total := 0.0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// Validate checks question ids, points and answer-key shapes.
func (q Quiz) Validate() error {
	seen := make(map[string]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" {
			return fmt.Errorf("%w: quiz %s has a question without id", ErrInvalidQuestion, q.ID)
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %s", ErrInvalidQuestion, question.ID)
		}
		seen[question.ID] = struct{}{}
		if question.Points <= 0 {
			return fmt.Errorf("%w: question %s must be worth positive points", ErrInvalidQuestion, question.ID)
		}
		switch question.Type {
		case SingleChoice, TrueFalse:
			if question.CorrectAnswer.IsMulti() || question.CorrectAnswer.IsZero() {
				return fmt.Errorf("%w: question %s needs a single correct answer", ErrInvalidQuestion, question.ID)
			}
		case MultipleSelect:
			if !question.CorrectAnswer.IsMulti() || question.CorrectAnswer.IsZero() {
				return fmt.Errorf("%w: question %s needs a set of correct answers", ErrInvalidQuestion, question.ID)
			}
		default:
			return fmt.Errorf("%w: question %s has unknown type %q", ErrInvalidQuestion, question.ID, question.Type)
		}
	}
	return nil
}

// ForStudent returns a copy with answer keys and explanations removed.
func (q Quiz) ForStudent() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = Answer{}
		question.Explanation = ""
		out.Questions[i] = question
	}
	return out
}

// AttemptStatus is the lifecycle state of a quiz attempt.
type AttemptStatus string

const (
	AttemptStarted   AttemptStatus = "started"
	AttemptSubmitted AttemptStatus = "submitted"
)

// QuestionResult is the per-question review record of a graded attempt.
type QuestionResult struct {
	StudentAnswer  Answer  `json:"studentAnswer"`
	CorrectAnswer  Answer  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
	PointsEarned   float64 `json:"pointsEarned"`
	PossiblePoints float64 `json:"possiblePoints"`
	Explanation    string  `json:"explanation,omitempty"`
}

// QuizAttempt is one instance of a student taking a quiz.
type QuizAttempt struct {
	ID             string                    `json:"id"`
	QuizID         string                    `json:"quizId"`
	EnrollmentID   string                    `json:"enrollmentId"`
	AttemptNumber  int                       `json:"attemptNumber"`
	StartedAt      time.Time                 `json:"startedAt"`
	SubmittedAt    *time.Time                `json:"submittedAt,omitempty"`
	Answers        map[string]Answer         `json:"answers,omitempty"`
	Results        map[string]QuestionResult `json:"results,omitempty"`
	EarnedPoints   float64                   `json:"earnedPoints"`
	PossiblePoints float64                   `json:"possiblePoints"`
	Score          float64                   `json:"score"`
}

func (a QuizAttempt) Status() AttemptStatus {
	if a.SubmittedAt != nil {
		return AttemptSubmitted
	}
	return AttemptStarted
}
