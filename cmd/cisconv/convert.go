// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cisconv/internal/convert"
	"github.com/pdiddy/cisconv/internal/pdftext"
	"github.com/pdiddy/cisconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [benchmark.pdf]",
	Short: "Convert a CIS benchmark PDF to an audit workbook",
	Long: `Convert extracts the text of a CIS benchmark PDF starting at --start-page,
parses every recommendation that carries an (Automated) or (Manual) tag,
groups them by category using the category mapping file, and writes an
.xlsx workbook with one sheet per category and a SCORE sheet.

The category selector (debian, ubuntu, windows_server, windows) is detected
from the PDF file name unless --os-type is given. With --db the parsed
recommendations are also saved to the audit store; if that save fails the
workbook is kept and a warning is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args)
	if err != nil {
		return err
	}

	ex, err := pdftext.New(cfg.Extraction)
	if err != nil {
		return err
	}

	_, err = convert.Run(context.Background(), cfg, ex, log, os.Stdout)
	return err
}

func convertConfig(cmd *cobra.Command, args []string) (types.ConvertConfig, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return types.ConvertConfig{}, fmt.Errorf("input PDF required: pass a path or --input")
	}

	output, _ := cmd.Flags().GetString("output")
	osType, _ := cmd.Flags().GetString("os-type")

	return types.ConvertConfig{
		Extraction: types.ExtractionConfig{
			Backend:      types.ExtractionBackend(viper.GetString("backend")),
			StartPage:    viper.GetInt("start_page"),
			PopplerImage: viper.GetString("poppler_image"),
		},
		InputPath:      input,
		OutputPath:     output,
		CategoriesPath: viper.GetString("categories"),
		OSType:         osType,
		DBPath:         viper.GetString("db"),
	}, nil
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "benchmark PDF to convert")
	convertCmd.Flags().StringP("output", "o", "", "workbook to write (default: <input name>.xlsx)")
	convertCmd.Flags().Int("start-page", convert.DefaultStartPage, "first page to parse (1-based)")
	convertCmd.Flags().String("os-type", "", "category selector, overriding detection from the file name")
	convertCmd.Flags().String("categories", "cis_categories.json", "category mapping file (JSON or YAML)")
	convertCmd.Flags().String("backend", "native", "text extraction backend: native or poppler")
	convertCmd.Flags().String("poppler-image", pdftext.DefaultPopplerImage, "container image with pdftotext and pdfinfo")

	_ = viper.BindPFlag("start_page", convertCmd.Flags().Lookup("start-page"))
	_ = viper.BindPFlag("categories", convertCmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("backend", convertCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("poppler_image", convertCmd.Flags().Lookup("poppler-image"))

	rootCmd.AddCommand(convertCmd)
}
