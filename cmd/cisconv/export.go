// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored recommendations to YAML or JSON",
	Long: `Export writes recommendations from the audit store to stdout, or to
--output when given. Accepts the same filters as query for partial exports;
with no filters every stored recommendation is written.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	opts := queryOptsFromFlags(cmd, args)
	ctx := context.Background()

	if format == "json" {
		err = st.ExportJSON(ctx, opts, w)
	} else {
		err = st.ExportYAML(ctx, opts, w)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
	}
	return nil
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "file to write (default: stdout)")
	exportCmd.Flags().Int("limit", 0, "maximum items to export (0 = all)")

	rootCmd.AddCommand(exportCmd)
}
