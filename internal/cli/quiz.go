package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newQuizCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take and review auto-graded quizzes",
	}
	cmd.AddCommand(newQuizShowCmd(configPath))
	cmd.AddCommand(newQuizStartCmd(configPath))
	cmd.AddCommand(newQuizSubmitCmd(configPath))
	cmd.AddCommand(newQuizReviewCmd(configPath))
	return cmd
}

func newQuizShowCmd(configPath *string) *cobra.Command {
	var quizID, enrollmentID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a quiz without answers plus the student's attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withServices(ctx, *configPath, func(s *services) error {
				overview, err := s.quiz.Overview(ctx, quizID, enrollmentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), overview)
			})
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id")
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newQuizStartCmd(configPath *string) *cobra.Command {
	var quizID, enrollmentID string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				attempt, err := s.quiz.Start(ctx, quizID, enrollmentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), attempt)
			})
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id")
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newQuizSubmitCmd(configPath *string) *cobra.Command {
	var attemptID, enrollmentID, answersPath string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit answers for an attempt",
		Long: `Submit answers read from a YAML file keyed by question id, e.g.

  q1: It requires a double coincidence of wants
  q3: "False"
  q4: [Credit cards, Bitcoin, Mobile payment apps]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := map[string]interface{}{}
			data, err := os.ReadFile(answersPath)
			if err != nil {
				return err
			}
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("parse answers: %w", err)
			}
			answers, err := parseAnswers(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				sub, err := s.quiz.Submit(ctx, attemptID, enrollmentID, answers)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sub)
			})
		},
	}
	cmd.Flags().StringVar(&attemptID, "attempt", "", "attempt id")
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id owning the attempt")
	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file of answers")
	_ = cmd.MarkFlagRequired("attempt")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func newQuizReviewCmd(configPath *string) *cobra.Command {
	var attemptID, enrollmentID string
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show the graded answers of a submitted attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				attempt, err := s.quiz.Review(ctx, attemptID, enrollmentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), attempt)
			})
		},
	}
	cmd.Flags().StringVar(&attemptID, "attempt", "", "attempt id")
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	_ = cmd.MarkFlagRequired("attempt")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}
