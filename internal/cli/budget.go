package cli

import (
	"github.com/spf13/cobra"

	"github.com/sithvalentine/wealth-builder-mvp/internal/app"
	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func newBudgetCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Check budgets against the 50/20/30 rule",
	}
	cmd.AddCommand(newBudgetCalculateCmd(configPath))
	cmd.AddCommand(newBudgetCheckCmd(configPath))
	cmd.AddCommand(newBudgetSaveCmd(configPath))
	cmd.AddCommand(newBudgetShowCmd(configPath))
	cmd.AddCommand(newBudgetListCmd(configPath))
	cmd.AddCommand(newBudgetDeleteCmd(configPath))
	return cmd
}

func allocationFlags(cmd *cobra.Command, a *domain.BudgetAllocation) {
	cmd.Flags().Float64Var(&a.MonthlyIncome, "income", 0, "monthly income")
	cmd.Flags().Float64Var(&a.Needs, "needs", 0, "amount for needs")
	cmd.Flags().Float64Var(&a.Wants, "wants", 0, "amount for wants")
	cmd.Flags().Float64Var(&a.Savings, "savings", 0, "amount for savings")
	_ = cmd.MarkFlagRequired("income")
}

func newBudgetCalculateCmd(configPath *string) *cobra.Command {
	var income float64
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Show the recommended 50/20/30 split of an income",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), *configPath, func(s *services) error {
				rec, err := s.budget.Calculate(income)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rec)
			})
		},
	}
	cmd.Flags().Float64Var(&income, "income", 0, "monthly income")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func newBudgetCheckCmd(configPath *string) *cobra.Command {
	var a domain.BudgetAllocation
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate an allocation without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), *configPath, func(s *services) error {
				eval, err := s.budget.Check(a)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), eval)
			})
		},
	}
	allocationFlags(cmd, &a)
	return cmd
}

func newBudgetSaveCmd(configPath *string) *cobra.Command {
	var enrollmentID string
	var in app.BudgetInput
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Evaluate and store an allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				saved, err := s.budget.Create(ctx, enrollmentID, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	allocationFlags(cmd, &in.BudgetAllocation)
	cmd.Flags().StringVar(&in.ScenarioName, "scenario", "", "scenario name")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&in.IsHypothetical, "hypothetical", false, "mark as a what-if scenario")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newBudgetShowCmd(configPath *string) *cobra.Command {
	var enrollmentID, entryID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a saved budget with its evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				saved, err := s.budget.Get(ctx, enrollmentID, entryID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&entryID, "id", "", "budget id")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newBudgetListCmd(configPath *string) *cobra.Command {
	var enrollmentID string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved budgets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				entries, err := s.budget.List(ctx, enrollmentID, all)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().BoolVar(&all, "all", false, "include hypothetical scenarios")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newBudgetDeleteCmd(configPath *string) *cobra.Command {
	var enrollmentID, entryID string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a saved budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				return s.budget.Delete(ctx, enrollmentID, entryID)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&entryID, "id", "", "budget id")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
