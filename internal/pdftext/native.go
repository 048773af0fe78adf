// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads PDFs in-process with github.com/ledongthuc/pdf.
type NativeExtractor struct{}

// Open opens the PDF at path.
func (NativeExtractor) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &nativeDocument{file: f, reader: r}, nil
}

type nativeDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *nativeDocument) NumPages() int {
	return d.reader.NumPage()
}

// PageText extracts page n. The PDF library panics on some malformed
// content streams; that is reported as an error for the page.
func (d *nativeDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d not found", n)
	}
	return page.GetPlainText(nil)
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}
