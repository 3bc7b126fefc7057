package httpapi

import (
	"errors"
	"net/http"

	"satspots.org/internal/ids"
	"satspots.org/internal/submission"
)

// handleAdmin gates every admin request: origin check (audited on
// rejection), then authentication (audited on every outcome), then
// dispatch. Unmatched admin paths are 404.
func (a *API) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writePreflight(w, "GET, POST, OPTIONS", "Content-Type, Authorization")
		return
	}

	addr := clientAddr(r)
	orig := r.Header.Get("Origin")
	if !a.adminOrigin.Allow(orig) {
		a.audit.Record(r.Context(), "blocked-origin", addr, map[string]string{
			"origin": orig,
			"path":   r.URL.Path,
		})
		writeError(w, r, http.StatusForbidden, "origin not allowed")
		return
	}
	echoOrigin(w, orig)

	verdict := a.auth.Verify(r.Header.Get("Authorization"))
	if !verdict.OK {
		a.audit.Record(r.Context(), verdict.Action, addr, map[string]string{
			"cause": verdict.Cause,
			"path":  r.URL.Path,
		})
		// Deliberately uniform: the body never reveals which check failed.
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.URL.Path {
	case "/admin/contact":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.adminGetContact(w, r, addr)
	case "/admin/mark-paid":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.adminMarkPaid(w, r, addr)
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

// adminGetContact returns the stored private record verbatim. Authorized
// contact disclosure is the whole point of this endpoint.
func (a *API) adminGetContact(w http.ResponseWriter, r *http.Request, addr string) {
	id := r.URL.Query().Get("submission_id")
	if !ids.ValidSubmissionID(id) {
		writeError(w, r, http.StatusBadRequest, "invalid or missing submission_id")
		return
	}

	rec, err := a.store.Get(r.Context(), id)
	if errors.Is(err, submission.ErrNotFound) {
		a.audit.Record(r.Context(), "contact-not-found", addr, map[string]string{"submission_id": id})
		writeError(w, r, http.StatusNotFound, "submission not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	a.audit.Record(r.Context(), "contact-accessed", addr, map[string]string{"submission_id": id})
	writeJSON(w, http.StatusOK, rec)
}

type markPaidRequest struct {
	SubmissionID string `json:"submission_id"`
	DeleteData   bool   `json:"delete_data"`
}

func (a *API) adminMarkPaid(w http.ResponseWriter, r *http.Request, addr string) {
	var req markPaidRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !ids.ValidSubmissionID(req.SubmissionID) {
		writeError(w, r, http.StatusBadRequest, "invalid or missing submission_id")
		return
	}

	_, err := a.store.MarkPaid(r.Context(), req.SubmissionID, req.DeleteData)
	if errors.Is(err, submission.ErrNotFound) {
		a.audit.Record(r.Context(), "marked-paid-not-found", addr, map[string]string{"submission_id": req.SubmissionID})
		writeError(w, r, http.StatusNotFound, "submission not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	action, msg := "marked-paid", "submission marked as paid"
	if req.DeleteData {
		action, msg = "marked-paid-deleted", "submission marked as paid and deleted"
	}
	a.audit.Record(r.Context(), action, addr, map[string]string{"submission_id": req.SubmissionID})
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": msg,
	})
}
