// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// PdftotextDecoder decodes PDFs with poppler's pdftotext in layout mode.
// It never finds tables, so every page goes through free-text scanning.
type PdftotextDecoder struct {
	bin  string
	exec executor
}

// NewPdftotextDecoder creates a decoder that runs the given pdftotext binary.
func NewPdftotextDecoder(bin string) *PdftotextDecoder {
	return &PdftotextDecoder{bin: bin, exec: osExecutor{}}
}

// Decode implements Decoder. Pages are separated by form feeds in the
// pdftotext output.
func (d *PdftotextDecoder) Decode(ctx context.Context, path string) ([]types.Page, error) {
	out, err := d.exec.Output(ctx, d.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", d.bin, path, err)
	}

	chunks := strings.Split(string(out), "\f")
	// pdftotext terminates every page, including the last, with a form feed.
	if len(chunks) > 1 && strings.TrimSpace(chunks[len(chunks)-1]) == "" {
		chunks = chunks[:len(chunks)-1]
	}

	pages := make([]types.Page, len(chunks))
	for i, chunk := range chunks {
		pages[i] = types.Page{
			Number: i + 1,
			Text:   strings.TrimRight(chunk, "\n"),
		}
	}
	return pages, nil
}
