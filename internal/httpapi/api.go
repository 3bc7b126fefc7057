// Package httpapi is the HTTP surface: the public submission webhook and
// the separately-gated admin endpoints.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"satspots.org/internal/admin"
	"satspots.org/internal/audit"
	"satspots.org/internal/form"
	"satspots.org/internal/locations"
	"satspots.org/internal/obs"
	"satspots.org/internal/origin"
	"satspots.org/internal/ratelimit"
	"satspots.org/internal/submission"
)

// IssuePublisher turns the public half of a submission into an external
// issue-tracker entry. Only the returned number and URL matter to the core.
type IssuePublisher interface {
	PublishSubmission(ctx context.Context, kind form.Kind, public map[string]string) (number int, url string, err error)
}

// Deps are the collaborators the HTTP layer is wired with.
type Deps struct {
	Store        *submission.Store
	Limiter      *ratelimit.Limiter
	PublicOrigin *origin.Gatekeeper
	AdminOrigin  *origin.Gatekeeper
	Locations    *locations.Cache
	Publisher    IssuePublisher
	Auth         *admin.Authenticator
	Audit        *audit.Logger
}

// API is the HTTP layer.
type API struct {
	mux     *http.ServeMux
	version string

	store        *submission.Store
	limiter      *ratelimit.Limiter
	publicOrigin *origin.Gatekeeper
	adminOrigin  *origin.Gatekeeper
	locations    *locations.Cache
	publisher    IssuePublisher
	auth         *admin.Authenticator
	audit        *audit.Logger

	now func() time.Time
}

// New wires the routes. Methods, paths and status codes are contractual.
func New(d Deps, version string) *API {
	a := &API{
		mux:          http.NewServeMux(),
		version:      version,
		store:        d.Store,
		limiter:      d.Limiter,
		publicOrigin: d.PublicOrigin,
		adminOrigin:  d.AdminOrigin,
		locations:    d.Locations,
		publisher:    d.Publisher,
		auth:         d.Auth,
		audit:        d.Audit,
		now:          time.Now,
	}

	a.mux.HandleFunc("/health", a.handleHealth)
	a.mux.HandleFunc("/api/submit", a.handleSubmit)
	// legacy path kept for deployed form configurations
	a.mux.HandleFunc("/webhook/tally", a.handleSubmit)
	a.mux.HandleFunc("/admin/", a.handleAdmin)

	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})

	return a
}

// SetClock overrides the request-processing clock; test use only.
func (a *API) SetClock(now func() time.Time) { a.now = now }

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	return obs.Instrument(
		RequestID(
			LoggingJSON(
				SecurityHeaders(
					recoverPanics(
						MaxBodyBytes(a.mux, 1<<20))))))
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": a.now().UTC().Format(time.RFC3339),
	})
}
