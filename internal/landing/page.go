// Package landing renders the Biological Alignment Tool landing page.
//
// A Page is an immutable value: a title, a description and an ordered list
// of navigation links. Rendering is a pure function of the Page, so two
// renders of the same Page produce byte-identical output.
package landing

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Defaults used when no configuration overrides them.
const (
	DefaultTitle       = "Biological Alignment Tool"
	DefaultDescription = "This webapp serves as an educational tool for alignment for biological applications."
	DefaultBaseURL     = "http://localhost:8501"
)

// ErrInvalidPage is returned (wrapped) by NewPage when validation fails.
var ErrInvalidPage = errors.New("invalid landing page")

// Link is a labeled navigation target.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Route names a page on the companion alignment app by its label and path segment.
type Route struct {
	Label string
	Path  string
}

// DefaultRoutes are the pages linked from the landing page, in display order.
var DefaultRoutes = []Route{
	{Label: "Background", Path: "Background"},
	{Label: "Global Alignment", Path: "Global_Alignment"},
	{Label: "Local Alignment", Path: "Local_Alignment"},
}

// Page is the renderer input. Construct it with NewPage or DefaultPage.
type Page struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
}

// DefaultPage returns the landing page with the built-in title, description
// and links pointing at DefaultBaseURL.
func DefaultPage() Page {
	links := make([]Link, 0, len(DefaultRoutes))
	for _, r := range DefaultRoutes {
		links = append(links, Link{Label: r.Label, URL: JoinURL(DefaultBaseURL, r.Path)})
	}
	return Page{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Links:       links,
	}
}

// NewPage validates its inputs and returns a Page holding its own copy of links.
func NewPage(title, description string, links []Link) (Page, error) {
	if strings.TrimSpace(title) == "" {
		return Page{}, fmt.Errorf("%w: title is required", ErrInvalidPage)
	}
	if len(links) == 0 {
		return Page{}, fmt.Errorf("%w: at least one link is required", ErrInvalidPage)
	}

	seen := make(map[string]bool, len(links))
	for i, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			return Page{}, fmt.Errorf("%w: link %d has no label", ErrInvalidPage, i)
		}
		if seen[l.Label] {
			return Page{}, fmt.Errorf("%w: duplicate link label %q", ErrInvalidPage, l.Label)
		}
		seen[l.Label] = true

		if err := validateURL(l.URL); err != nil {
			return Page{}, fmt.Errorf("%w: link %q: %v", ErrInvalidPage, l.Label, err)
		}
	}

	return Page{
		Title:       title,
		Description: description,
		Links:       append([]Link(nil), links...),
	}, nil
}

// JoinURL appends a route path to a base URL with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
