// Package seed ships the starter curriculum quizzes and a demo class.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

//go:embed quizzes/*.json
var quizFiles embed.FS

// QuizSaver stores quiz documents.
type QuizSaver interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// Quizzes decodes and validates every bundled quiz, ordered by id.
func Quizzes() ([]domain.Quiz, error) {
	names, err := fs.Glob(quizFiles, "quizzes/*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]domain.Quiz, 0, len(names))
	for _, name := range names {
		data, err := quizFiles.ReadFile(name)
		if err != nil {
			return nil, err
		}
		var q domain.Quiz
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// QuizMap is Quizzes keyed by id, for the static loader.
func QuizMap() (map[string]domain.Quiz, error) {
	list, err := Quizzes()
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.Quiz, len(list))
	for _, q := range list {
		m[q.ID] = q
	}
	return m, nil
}

// SaveQuizzes writes every bundled quiz through saver.
func SaveQuizzes(ctx context.Context, saver QuizSaver) ([]domain.Quiz, error) {
	list, err := Quizzes()
	if err != nil {
		return nil, err
	}
	for _, q := range list {
		if err := saver.SaveQuiz(ctx, q); err != nil {
			return nil, fmt.Errorf("save quiz %s: %w", q.ID, err)
		}
	}
	return list, nil
}
