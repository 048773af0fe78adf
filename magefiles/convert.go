//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the PDF named by $CISCONV_PDF using
// cis_categories.json from the working directory.
func Convert() error {
	mg.Deps(Build)

	pdf := os.Getenv("CISCONV_PDF")
	if pdf == "" {
		return fmt.Errorf("set CISCONV_PDF to a benchmark PDF")
	}
	args := []string{"convert", "-i", pdf}
	if db := os.Getenv("CISCONV_DB"); db != "" {
		args = append(args, "--db", db)
	}
	return sh.RunV("bin/cisconv", args...)
}
