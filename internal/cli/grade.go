package cli

import (
	"github.com/spf13/cobra"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func newGradeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Record scores and compute weighted grades",
	}
	cmd.AddCommand(newGradeRecordCmd(configPath))
	cmd.AddCommand(newGradeReportCmd(configPath))
	cmd.AddCommand(newGradeClassCmd(configPath))
	cmd.AddCommand(newGradeWeightsCmd(configPath))
	return cmd
}

func newGradeRecordCmd(configPath *string) *cobra.Command {
	var enrollmentID, category, source string
	var earned, possible float64
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a scored item for an enrollment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				item, err := s.gradebook.RecordGrade(ctx, enrollmentID, category, earned, possible, source)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), item)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&category, "category", "", "Projects, Quiz, Participation or RealWorld")
	cmd.Flags().Float64Var(&earned, "earned", 0, "points earned")
	cmd.Flags().Float64Var(&possible, "possible", 0, "points possible")
	cmd.Flags().StringVar(&source, "source", "", "optional origin of the score")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("possible")
	return cmd
}

func newGradeReportCmd(configPath *string) *cobra.Command {
	var enrollmentID string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the weighted grade of an enrollment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				report, err := s.gradebook.EnrollmentReport(ctx, enrollmentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newGradeClassCmd(configPath *string) *cobra.Command {
	var classID string
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Show every student's grade and the class average",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				report, err := s.gradebook.ClassReport(ctx, classID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringVar(&classID, "class", "", "class id")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func newGradeWeightsCmd(configPath *string) *cobra.Command {
	var classID string
	var w domain.CategoryWeights
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Replace the category weights of a class",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				class, err := s.gradebook.SetClassWeights(ctx, classID, w)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), class)
			})
		},
	}
	cmd.Flags().StringVar(&classID, "class", "", "class id")
	cmd.Flags().Float64Var(&w.Projects, "projects", domain.DefaultCategoryWeights.Projects, "projects weight")
	cmd.Flags().Float64Var(&w.Quiz, "quiz", domain.DefaultCategoryWeights.Quiz, "quiz weight")
	cmd.Flags().Float64Var(&w.Participation, "participation", domain.DefaultCategoryWeights.Participation, "participation weight")
	cmd.Flags().Float64Var(&w.RealWorld, "real-world", domain.DefaultCategoryWeights.RealWorld, "real-world weight")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}
