package cli

import (
	"github.com/spf13/cobra"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/seed"
)

type seedResult struct {
	Class       domain.Class        `json:"class"`
	Enrollments []domain.Enrollment `json:"enrollments"`
	Quizzes     []string            `json:"quizzes"`
}

// newSeedCmd loads the bundled quizzes and creates a demo class.
func newSeedCmd(configPath *string) *cobra.Command {
	var className string
	var students []string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the bundled quizzes and create a class with enrolled students",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withServices(ctx, *configPath, func(s *services) error {
				quizzes, err := seed.SaveQuizzes(ctx, s.quizzes)
				if err != nil {
					return err
				}
				class, err := s.gradebook.CreateClass(ctx, className, nil)
				if err != nil {
					return err
				}
				out := seedResult{Class: class}
				for _, q := range quizzes {
					out.Quizzes = append(out.Quizzes, q.ID)
				}
				for _, student := range students {
					e, err := s.gradebook.Enroll(ctx, class.ID, student)
					if err != nil {
						return err
					}
					out.Enrollments = append(out.Enrollments, e)
				}
				s.log.Info("seed complete", "class", class.ID, "quizzes", len(quizzes), "students", len(students))
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&className, "class-name", "Wealth Builder Demo", "name of the class to create")
	cmd.Flags().StringSliceVar(&students, "student", []string{"demo-student"}, "student ids to enroll (repeatable)")
	return cmd
}
