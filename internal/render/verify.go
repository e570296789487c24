// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// minPDFSize is the smallest plausible size for a rendered report. A file
// below this carries no content worth handing to a student.
const minPDFSize = 2000

var pdfMagic = []byte("%PDF")

// verifyPDF checks that the written file is a usable PDF: the size floor,
// the magic bytes, and a structural validation pass. Any failure routes
// the caller to the plain-text fallback.
func verifyPDF(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	if info.Size() <= minPDFSize {
		return fmt.Errorf("output too small: %d bytes", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := f.Read(head); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(head, pdfMagic) {
		return fmt.Errorf("missing %%PDF header")
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("pdf validation: %w", err)
	}
	return nil
}
