package domain

import "errors"

var (
	// ErrInvalidCategory is returned for a grade category outside the closed set.
	ErrInvalidCategory = errors.New("invalid grade category")
	// ErrInvalidScore is returned for negative points or a non-positive possible score.
	ErrInvalidScore = errors.New("invalid score")
	// ErrInvalidWeight is returned when a category weight is negative.
	ErrInvalidWeight = errors.New("invalid category weight")

	// ErrAttemptLimitExceeded is returned when a student has used every allowed attempt.
	ErrAttemptLimitExceeded = errors.New("maximum quiz attempts reached")
	// ErrAlreadySubmitted is returned when an attempt has already been graded.
	ErrAlreadySubmitted = errors.New("quiz attempt already submitted")
	// ErrTimeLimitExceeded is returned when a submission arrives after the quiz time limit.
	ErrTimeLimitExceeded = errors.New("quiz time limit exceeded")
	// ErrNotSubmitted is returned when results are requested for an attempt still in progress.
	ErrNotSubmitted = errors.New("quiz attempt not yet submitted")
	// ErrAttemptConflict is returned by stores when the attempt number is already taken.
	ErrAttemptConflict = errors.New("quiz attempt number already taken")
	// ErrSubmissionInProgress is returned when another submission holds the attempt lock.
	ErrSubmissionInProgress = errors.New("quiz attempt submission in progress")
	// ErrAnswerTypeMismatch indicates a single answer was given for a multi-select question or vice versa.
	ErrAnswerTypeMismatch = errors.New("answer type does not match question type")
	// ErrInvalidQuestion indicates a malformed quiz definition.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrAllocationMismatch is returned when needs+wants+savings does not equal income.
	ErrAllocationMismatch = errors.New("budget must allocate all income")
	// ErrInvalidIncome is returned for a non-positive monthly income.
	ErrInvalidIncome = errors.New("valid monthly income required")
	// ErrInvalidAllocation is returned for a negative budget bucket.
	ErrInvalidAllocation = errors.New("budget allocations must not be negative")

	// ErrInvalidLineItem is returned for a negative asset or liability amount.
	ErrInvalidLineItem = errors.New("line item amounts must not be negative")

	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrBudgetNotFound     = errors.New("budget entry not found")
	ErrSnapshotNotFound   = errors.New("wealth snapshot not found")
)
