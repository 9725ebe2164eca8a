package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trendtruth/adapters/analyzeapi"
	"trendtruth/domain/trend"
	"trendtruth/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trendtruth",
		Short: "TrendTruth command line tools",
	}

	rootCmd.PersistentFlags().String("backend", "http://localhost:8080", "analyze API base URL")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSourcesCmd(),
		newCategoriesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func clientFor(cmd *cobra.Command) *analyzeapi.Client {
	backend, _ := cmd.Flags().GetString("backend")
	return analyzeapi.NewClient(backend, nil)
}

func newAnalyzeCmd() *cobra.Command {
	var (
		category string
		limit    int
		refresh  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run an analysis and print the scored trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFor(cmd)
			batch, err := client.FetchBatch(cmd.Context(), ports.BatchRequest{Limit: limit, Category: category, ForceRefresh: refresh})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERDICT\tFAKE%\tSPREAD\tPLATFORM\tTITLE")
			for _, r := range batch.Results {
				title := r.Trend.Title
				if len(title) > 70 {
					title = title[:67] + "..."
				}
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\t%s\n",
					r.Verdict, r.FakeProbability, r.SpreadIndex, r.Trend.Platform, title)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d trends analyzed for %q at %s\n",
				batch.AnalyzedCount, batch.SelectedCategory, batch.GeneratedAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "category filter")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum trends to analyze")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the backend cache")
	return cmd
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Show per-source health from the latest analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFor(cmd)
			batch, err := client.FetchBatch(cmd.Context(), ports.BatchRequest{Category: "all"})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tSTATUS")
			for _, s := range batch.SourceHealth {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Status)
			}
			return w.Flush()
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known category filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL")
			for _, c := range trend.KnownCategories() {
				fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Label)
			}
			return w.Flush()
		},
	}
}
