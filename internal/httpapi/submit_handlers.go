package httpapi

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"satspots.org/internal/form"
	"satspots.org/internal/ids"
	"satspots.org/internal/obs"
	"satspots.org/internal/privacy"
	"satspots.org/internal/submission"
)

type submitResponse struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submissionId"`
	IssueNumber  int    `json:"issueNumber"`
	IssueURL     string `json:"issueUrl"`
}

// handleSubmit is the public intake path:
// origin gate -> rate limit -> extract -> classify -> validate ->
// partition -> store private half -> publish public half.
func (a *API) handleSubmit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writePreflight(w, "POST, OPTIONS", "Content-Type")
		return
	case http.MethodPost:
	default:
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	orig := r.Header.Get("Origin")
	if !a.publicOrigin.Allow(orig) {
		writeError(w, r, http.StatusForbidden, "origin not allowed")
		return
	}
	echoOrigin(w, orig)

	addr := clientAddr(r)
	if res := a.limiter.Check(r.Context(), addr); !res.Admitted() {
		seconds := int(math.Ceil(res.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":      "rate_limited",
			"message":    "too many submissions from this address, try again later",
			"retryAfter": seconds,
		})
		return
	}

	var payload map[string]any
	if err := decodeLooseJSON(r, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	fields := form.Extract(payload)
	kind, err := form.Classify(fields)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var knownLocation func(string) bool
	if a.locations != nil {
		knownLocation = func(id string) bool {
			return a.locations.Valid(r.Context(), id)
		}
	}
	if err := form.Validate(fields, a.now(), knownLocation); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	public, private := privacy.Partition(fields)
	submitterID := privacy.SubmitterID(private)
	id := ids.NewSubmissionID(a.now())

	rec := make(submission.Record, len(private)+3)
	for k, v := range private {
		rec[k] = v
	}
	rec["submissionId"] = id
	rec["submittedAt"] = a.now().UTC().Format(time.RFC3339)
	if submitterID != "" {
		rec["submitterId"] = submitterID
		public["submitter_id"] = submitterID
	}

	if err := a.store.Put(r.Context(), id, rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "storage_failed",
			"details": "could not persist submission",
		})
		return
	}

	number, url, err := a.publisher.PublishSubmission(r.Context(), kind, public)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "issue_creation_failed",
			"details": err.Error(),
		})
		return
	}

	obs.CountSubmission(string(kind))
	writeJSON(w, http.StatusOK, submitResponse{
		Success:      true,
		SubmissionID: id,
		IssueNumber:  number,
		IssueURL:     url,
	})
}

// writePreflight answers a CORS preflight. Wildcard is acceptable only
// here; actual responses echo the validated origin.
func writePreflight(w http.ResponseWriter, methods, headers string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", headers)
	w.Header().Set("Access-Control-Max-Age", "600")
	w.WriteHeader(http.StatusNoContent)
}

func echoOrigin(w http.ResponseWriter, orig string) {
	w.Header().Set("Access-Control-Allow-Origin", orig)
	w.Header().Add("Vary", "Origin")
}
