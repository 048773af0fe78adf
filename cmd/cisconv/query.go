// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cisconv/internal/store"
	"github.com/pdiddy/cisconv/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search recommendations in the audit store",
	Long: `Query searches recommendations saved by "convert --db". The text is
matched case-insensitively against the number, title, and every section.
Filters narrow results by category, document, or assessment.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd, args)
	results, err := st.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(os.Stdout, results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []store.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-9s  %-50s  %-24s  %s\n",
		"Number", "Type", "Title", "Category", "Document")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range results {
		fmt.Fprintf(w, "%-10s  %-9s  %-50s  %-24s  %s\n",
			r.Number, r.Assessment, truncate(r.Title, 50), truncate(r.Category, 24), r.Document)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- shared helpers ---

func openStore() (*store.Store, error) {
	path := viper.GetString("db")
	if path == "" {
		return nil, fmt.Errorf("audit store required: set --db or db in cisconv.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}
	return store.Open(path)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	category, _ := cmd.Flags().GetString("category")
	document, _ := cmd.Flags().GetString("document")
	assessment, _ := cmd.Flags().GetString("assessment")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Category:   category,
		Document:   document,
		Assessment: types.Assessment(assessment),
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "text to match in number, title, or sections")
	cmd.Flags().String("category", "", "filter by category name")
	cmd.Flags().String("document", "", "filter by document id (PDF base name)")
	cmd.Flags().String("assessment", "", "filter by assessment: Automated or Manual")
}

func init() {
	addFilterFlags(queryCmd)
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = default, negative = all)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}
