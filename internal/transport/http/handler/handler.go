package handler

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/mandalnilabja/bioalign/internal/landing"
	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/admin"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/site"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Site  *site.Handlers
	Admin *admin.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
// store may be nil when the admin API is disabled.
func NewRepo(page landing.Page, cache *ristretto.Cache[string, []byte], store storage.Storage, logger *slog.Logger) *Repo {
	startTime := time.Now()
	return &Repo{
		Site:  site.New(page, cache, logger),
		Admin: admin.New(store, startTime),
		Infra: infra.New(cache, startTime),
	}
}
