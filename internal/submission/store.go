// Package submission persists the private half of accepted submissions.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"satspots.org/internal/ids"
	"satspots.org/internal/kv"
)

const (
	keyPrefix = "submission:"

	// RetentionTTL is how long unpaid submissions are kept.
	RetentionTTL = 180 * 24 * time.Hour
	// PaidRetentionTTL is the shortened retention after a payout.
	PaidRetentionTTL = 30 * 24 * time.Hour
)

var (
	ErrNotFound  = errors.New("submission: not found")
	ErrInvalidID = errors.New("submission: invalid id")
)

// Record is the private submission record: the contact fields enriched with
// submissionId, submitterId and submittedAt, and after a payout with paid
// and paidAt. Stored and returned verbatim.
type Record map[string]any

// Store keeps private records in the key-value store under submission:<id>.
type Store struct {
	store kv.Store
	now   func() time.Time
}

// NewStore wraps the shared key-value store.
func NewStore(store kv.Store) *Store {
	return &Store{store: store, now: time.Now}
}

// SetClock overrides the store clock; test use only.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// key builds the storage key. Ids are format-checked before they touch the
// store: the KV key namespace is unstructured text, so this is the guard
// against key-space injection.
func key(id string) (string, error) {
	if !ids.ValidSubmissionID(id) {
		return "", ErrInvalidID
	}
	return keyPrefix + id, nil
}

// Put persists the record with the standard retention TTL.
func (s *Store) Put(ctx context.Context, id string, rec Record) error {
	k, err := key(id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal submission %s: %w", id, err)
	}
	return s.store.Put(ctx, k, string(data), RetentionTTL)
}

// Get returns the stored record or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	k, err := key(id)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Get(ctx, k)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal submission %s: %w", id, err)
	}
	return rec, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	k, err := key(id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, k)
}

// MarkPaid flips the record to paid and either deletes it immediately or
// rewrites it with the shortened retention. Marking an id that was deleted
// or never stored returns ErrNotFound; the two cases are indistinguishable.
func (s *Store) MarkPaid(ctx context.Context, id string, deleteAfter bool) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec["paid"] = true
	rec["paidAt"] = s.now().UTC().Format(time.RFC3339)

	if deleteAfter {
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return rec, nil
	}

	k, _ := key(id)
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal submission %s: %w", id, err)
	}
	if err := s.store.Put(ctx, k, string(data), PaidRetentionTTL); err != nil {
		return nil, err
	}
	return rec, nil
}
