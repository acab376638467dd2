package landing

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/mandalnilabja/bioalign/web"
)

var pageTemplate = template.Must(template.ParseFS(web.FS, "templates/landing.html.tmpl"))

// Render writes the landing page HTML document to w.
func (p Page) Render(w io.Writer) error {
	// Execute into a buffer so a template failure never leaves w half written.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return fmt.Errorf("failed to render landing page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write landing page: %w", err)
	}
	return nil
}

// RenderString renders the page and returns it as a string.
func (p Page) RenderString() (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fingerprint returns a stable hex digest of the page content.
// Pages with equal content share a fingerprint.
func (p Page) Fingerprint() string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	write(p.Title)
	write(p.Description)
	for _, l := range p.Links {
		write(l.Label)
		write(l.URL)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
