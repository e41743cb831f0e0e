package render

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"text/template"

	"pythia/pkg/errors"
)

//go:embed page.tmpl
var pageTemplate string

// pageData is what the page template renders.
type pageData struct {
	// Analysis is spliced into the page verbatim. The completion text is
	// model output and is not HTML-escaped, matching the published page
	// format; do not point the output path at anything that serves
	// untrusted viewers without revisiting this.
	Analysis string
}

// Renderer writes the analysis page to a fixed output path.
type Renderer struct {
	outputPath string
	tmpl       *template.Template
}

// New parses the embedded page template for the given output path.
func New(outputPath string) (*Renderer, error) {
	if outputPath == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "output path is required")
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parse page template")
	}

	return &Renderer{
		outputPath: outputPath,
		tmpl:       tmpl,
	}, nil
}

// Render executes the template with the analysis body and replaces the
// output file. The write goes through a temp file in the same
// directory and a rename, so a failed run never leaves a truncated
// page behind.
func (r *Renderer) Render(body string) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, pageData{Analysis: body}); err != nil {
		return errors.Wrap(err, "execute page template")
	}

	dir := filepath.Dir(r.outputPath)
	tmp, err := os.CreateTemp(dir, ".page-*.html")
	if err != nil {
		return errors.Wrap(err, "create temp output file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "write page")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temp output file")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "chmod output file")
	}
	if err := os.Rename(tmpName, r.outputPath); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "replace output file")
	}

	return nil
}
