// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/cisconv/internal/container"
)

// DefaultPopplerImage is used when no image is configured.
const DefaultPopplerImage = "poppler:latest"

// PopplerExtractor extracts text with poppler's pdfinfo and pdftotext run
// inside a container image.
type PopplerExtractor struct {
	runtime container.Runtime
	image   string
}

// NewPopplerExtractor verifies that image exists in rt before returning.
func NewPopplerExtractor(rt container.Runtime, image string) (*PopplerExtractor, error) {
	if image == "" {
		image = DefaultPopplerImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
	}
	return &PopplerExtractor{runtime: rt, image: image}, nil
}

// Open loads the PDF into memory and asks pdfinfo for its page count. The
// bytes are piped to the container once per page.
func (p *PopplerExtractor) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}

	var info bytes.Buffer
	if err := p.runtime.Run(p.image, []string{"pdfinfo", "-"}, bytes.NewReader(data), &info); err != nil {
		return nil, fmt.Errorf("reading page count of %s: %w", path, err)
	}
	pages, err := parsePageCount(info.String())
	if err != nil {
		return nil, fmt.Errorf("reading page count of %s: %w", path, err)
	}

	return &popplerDocument{extractor: p, data: data, pages: pages}, nil
}

type popplerDocument struct {
	extractor *PopplerExtractor
	data      []byte
	pages     int
}

func (d *popplerDocument) NumPages() int { return d.pages }

func (d *popplerDocument) PageText(n int) (string, error) {
	if n < 1 || n > d.pages {
		return "", fmt.Errorf("page %d not found", n)
	}
	page := strconv.Itoa(n)
	var out bytes.Buffer
	args := []string{"pdftotext", "-f", page, "-l", page, "-", "-"}
	if err := d.extractor.runtime.Run(d.extractor.image, args, bytes.NewReader(d.data), &out); err != nil {
		return "", err
	}
	// pdftotext terminates every page with a form feed.
	return strings.TrimRight(out.String(), "\f"), nil
}

func (d *popplerDocument) Close() error {
	d.data = nil
	return nil
}

// parsePageCount reads the "Pages:" field from pdfinfo output.
func parsePageCount(info string) (int, error) {
	sc := bufio.NewScanner(strings.NewReader(info))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Pages" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("bad page count %q: %w", strings.TrimSpace(value), err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("pdfinfo output has no Pages field")
}
