package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sithvalentine/wealth-builder-mvp/internal/app"
)

const dateLayout = "2006-01-02"

func newNetWorthCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networth",
		Short: "Track net worth snapshots",
	}
	cmd.AddCommand(newNetWorthRecordCmd(configPath))
	cmd.AddCommand(newNetWorthHistoryCmd(configPath))
	cmd.AddCommand(newNetWorthAnalyticsCmd(configPath))
	cmd.AddCommand(newNetWorthDeleteCmd(configPath))
	return cmd
}

func newNetWorthRecordCmd(configPath *string) *cobra.Command {
	var enrollmentID, inputPath string
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a snapshot read from a YAML file",
		Long: `Record a snapshot read from a YAML file, e.g.

  recordDate: 2025-01-31
  assets: {cashSavings: 1200, investments: 300}
  liabilities: {creditCardDebt: 450}
  notes: after first paycheck`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}
			var in app.SnapshotInput
			if err := yaml.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				rec, err := s.wealth.Record(ctx, enrollmentID, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rec)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&inputPath, "file", "", "YAML snapshot file")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newNetWorthHistoryCmd(configPath *string) *cobra.Command {
	var enrollmentID, fromRaw, toRaw string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List snapshots in a date range with a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDate(fromRaw, false)
			if err != nil {
				return err
			}
			to, err := parseDate(toRaw, true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				history, err := s.wealth.History(ctx, enrollmentID, from, to)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), history)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&fromRaw, "from", "", "first day (YYYY-MM-DD), open if empty")
	cmd.Flags().StringVar(&toRaw, "to", "", "last day (YYYY-MM-DD), open if empty")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newNetWorthAnalyticsCmd(configPath *string) *cobra.Command {
	var enrollmentID string
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Summarise growth over every actual snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				analytics, err := s.wealth.Analytics(ctx, enrollmentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), analytics)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	_ = cmd.MarkFlagRequired("enrollment")
	return cmd
}

func newNetWorthDeleteCmd(configPath *string) *cobra.Command {
	var enrollmentID, snapshotID string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStoredServices(ctx, *configPath, func(s *services) error {
				return s.wealth.Delete(ctx, enrollmentID, snapshotID)
			})
		},
	}
	cmd.Flags().StringVar(&enrollmentID, "enrollment", "", "enrollment id")
	cmd.Flags().StringVar(&snapshotID, "id", "", "snapshot id")
	_ = cmd.MarkFlagRequired("enrollment")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// parseDate reads a YYYY-MM-DD day in UTC. endOfDay makes the bound cover the whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return d, nil
}
