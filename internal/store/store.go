// Package store persists detected subscriptions and owns the merge between
// fresh detection output and stored human decisions.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/breakwater-app/breakwater/internal/detect"
)

// ErrNotFound is returned by Update for an unknown subscription id.
var ErrNotFound = errors.New("subscription not found")

// ErrInvalidPatch is returned by Update for a patch with out-of-vocabulary
// values.
var ErrInvalidPatch = errors.New("invalid patch")

// Store is the persistence contract consumed by the host routes. UpsertMany
// merges a detection run into storage by candidate id; implementations must
// serialize the read-modify-write per record (transaction or equivalent) so a
// detection run cannot race a user's confirm/ignore action and silently
// revert it.
type Store interface {
	List(ctx context.Context) ([]*detect.Candidate, error)
	UpsertMany(ctx context.Context, incoming []*detect.Candidate) ([]*detect.Candidate, error)
	Update(ctx context.Context, id string, patch Patch) (*detect.Candidate, error)
}

// Patch is a partial update applied by a host route on behalf of a user.
// Nil fields are left untouched.
type Patch struct {
	Name     *string         `json:"name,omitempty"`
	Amount   *float64        `json:"amount,omitempty"`
	Cadence  *detect.Cadence `json:"cadence,omitempty"`
	Category *string         `json:"category,omitempty"`
	Status   *detect.Status  `json:"status,omitempty"`
}

// Validate rejects patch values outside the allowed vocabularies.
func (p Patch) Validate() error {
	if p.Status != nil {
		switch *p.Status {
		case detect.StatusSuggested, detect.StatusConfirmed, detect.StatusIgnored:
		default:
			return fmt.Errorf("%w: status %q", ErrInvalidPatch, *p.Status)
		}
	}
	if p.Cadence != nil {
		switch *p.Cadence {
		case detect.CadenceMonthly, detect.CadenceYearly, detect.CadenceWeekly:
		default:
			return fmt.Errorf("%w: cadence %q", ErrInvalidPatch, *p.Cadence)
		}
	}
	return nil
}

// merge folds one incoming candidate into its stored predecessor.
//
// A record the user has confirmed or ignored keeps its identity fields and
// only refreshes what the detector observed (last seen, occurrences). A
// still-suggested record takes the fresh detection but preserves a
// previously set category override; a curation rule may move it to ignored,
// never the other way. New ids insert as-is with suggested as the default
// status.
func merge(prev, incoming *detect.Candidate, now time.Time) *detect.Candidate {
	if incoming.Status == "" {
		incoming.Status = detect.StatusSuggested
	}

	if prev == nil {
		next := *incoming
		next.UpdatedAt = now
		return &next
	}

	if prev.Status == detect.StatusConfirmed || prev.Status == detect.StatusIgnored {
		next := *prev
		next.LastSeen = incoming.LastSeen
		next.Occurrences = incoming.Occurrences
		next.UpdatedAt = now
		return &next
	}

	next := *incoming
	if prev.Category != "" && incoming.Category == "" {
		next.Category = prev.Category
	}
	if incoming.Status != detect.StatusIgnored {
		next.Status = detect.StatusSuggested
	}
	next.UpdatedAt = now
	return &next
}

// applyPatch produces the patched record, rederiving annual cost and the
// review flag from the patched fields.
func applyPatch(sub *detect.Candidate, patch Patch, now time.Time) *detect.Candidate {
	next := *sub
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Amount != nil {
		next.Amount = *patch.Amount
	}
	if patch.Cadence != nil {
		next.Cadence = *patch.Cadence
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	next.AnnualCost = detect.AnnualCost(next.Cadence, next.Amount)
	next.NeedsReview = next.Confidence != detect.ConfidenceHigh || next.Category == ""
	next.UpdatedAt = now
	return &next
}

// sortForList orders records annual cost descending with id as tiebreak,
// the stable presentation order shared by every backend.
func sortForList(subs []*detect.Candidate) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].AnnualCost != subs[j].AnnualCost {
			return subs[i].AnnualCost > subs[j].AnnualCost
		}
		return subs[i].ID < subs[j].ID
	})
}
