package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glp360/riskscore/internal/store"
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Inspect the local delivery log",
}

var deliveriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submission deliveries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openDeliveryLog()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Status: store.DeliveryStatus(status)}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		ctx := context.Background()
		rows, err := s.DeliveryRepo().RecentDeliveries(ctx, opts)
		if err != nil {
			return fmt.Errorf("query deliveries: %w", err)
		}

		if len(rows) == 0 {
			fmt.Println("No deliveries found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-36s  %-9s  %5s  %-9s  %4s  %3s  %6s\n",
			"Seq", "Timestamp", "Submission", "Category", "Score", "Status", "HTTP", "Try", "Ms")
		fmt.Println(strings.Repeat("─", 110))

		for _, d := range rows {
			code := "-"
			if d.StatusCode > 0 {
				code = fmt.Sprintf("%d", d.StatusCode)
			}
			fmt.Printf("%-5d  %-19s  %-36s  %-9s  %5d  %-9s  %4s  %3d  %6d\n",
				d.Sequence,
				d.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				d.SubmissionID,
				d.Category,
				d.TotalScore,
				d.Status,
				code,
				d.Attempts,
				d.LatencyMs,
			)
			if d.ErrorMessage != "" {
				fmt.Printf("       %s\n", truncate(d.ErrorMessage, 100))
			}
		}
		return nil
	},
}

var deliveriesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show delivery totals by status and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openDeliveryLog()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		stats, err := s.DeliveryRepo().Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		if stats.Total == 0 {
			fmt.Println("No deliveries recorded yet.")
			return nil
		}

		fmt.Println("By Status")
		fmt.Println(strings.Repeat("─", 32))
		for _, st := range []store.DeliveryStatus{store.StatusDelivered, store.StatusFailed, store.StatusSkipped} {
			fmt.Printf("%-16s  %8d\n", st, stats.ByStatus[st])
		}

		fmt.Println()
		fmt.Println("By Category")
		fmt.Println(strings.Repeat("─", 32))
		cats := make([]string, 0, len(stats.ByCategory))
		for c := range stats.ByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("%-16s  %8d\n", c, stats.ByCategory[c])
		}

		fmt.Println(strings.Repeat("─", 32))
		fmt.Printf("%-16s  %8d\n", "TOTAL", stats.Total)
		fmt.Printf("%-16s  %8.0f\n", "Avg latency ms", stats.AvgLatencyMs)
		return nil
	},
}

func openDeliveryLog() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	deliveriesListCmd.Flags().IntP("limit", "n", 20, "Number of deliveries to show")
	deliveriesListCmd.Flags().StringP("status", "s", "", "Filter by status (delivered, failed, skipped)")
	deliveriesListCmd.Flags().Duration("since", 0, "Only show deliveries newer than this (e.g. 24h)")

	deliveriesCmd.AddCommand(deliveriesListCmd)
	deliveriesCmd.AddCommand(deliveriesStatsCmd)
}
