package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/breakwater-app/breakwater/internal/detect"
)

const subscriptionsCollection = "subscriptions"

// FirestoreStore implements Store on Firestore. Each subscription is one
// document keyed by its deterministic id; merges run inside Firestore
// transactions so a recompute cannot race a user's status change.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// subscriptionDoc is the Firestore document shape for a stored subscription.
type subscriptionDoc struct {
	ID            string    `firestore:"id"`
	Name          string    `firestore:"name"`
	NormalizedKey string    `firestore:"normalizedKey"`
	Amount        float64   `firestore:"amount"`
	Cadence       string    `firestore:"cadence"`
	AnnualCost    float64   `firestore:"annualCost"`
	LastSeen      string    `firestore:"lastSeen"`
	Occurrences   int       `firestore:"occurrences"`
	Confidence    string    `firestore:"confidence"`
	NeedsReview   bool      `firestore:"needsReview"`
	Category      string    `firestore:"category"`
	Status        string    `firestore:"status"`
	IgnoreReasons []string  `firestore:"ignoreReasons"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func toDoc(s *detect.Candidate) subscriptionDoc {
	return subscriptionDoc{
		ID:            s.ID,
		Name:          s.Name,
		NormalizedKey: s.NormalizedKey,
		Amount:        s.Amount,
		Cadence:       string(s.Cadence),
		AnnualCost:    s.AnnualCost,
		LastSeen:      s.LastSeen,
		Occurrences:   s.Occurrences,
		Confidence:    string(s.Confidence),
		NeedsReview:   s.NeedsReview,
		Category:      s.Category,
		Status:        string(s.Status),
		IgnoreReasons: s.IgnoreReasons,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (d subscriptionDoc) toCandidate() *detect.Candidate {
	return &detect.Candidate{
		ID:            d.ID,
		Name:          d.Name,
		NormalizedKey: d.NormalizedKey,
		Amount:        d.Amount,
		Cadence:       detect.Cadence(d.Cadence),
		AnnualCost:    d.AnnualCost,
		LastSeen:      d.LastSeen,
		Occurrences:   d.Occurrences,
		Confidence:    detect.Confidence(d.Confidence),
		NeedsReview:   d.NeedsReview,
		Category:      d.Category,
		Status:        detect.Status(d.Status),
		IgnoreReasons: d.IgnoreReasons,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *FirestoreStore) List(ctx context.Context) ([]*detect.Candidate, error) {
	iter := s.client.Collection(subscriptionsCollection).Documents(ctx)
	defer iter.Stop()

	var out []*detect.Candidate
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}
		var doc subscriptionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decoding subscription %s: %w", snap.Ref.ID, err)
		}
		out = append(out, doc.toCandidate())
	}
	sortForList(out)
	return out, nil
}

func (s *FirestoreStore) UpsertMany(ctx context.Context, incoming []*detect.Candidate) ([]*detect.Candidate, error) {
	for _, c := range incoming {
		if c == nil || c.ID == "" {
			continue
		}
		ref := s.client.Collection(subscriptionsCollection).Doc(c.ID)
		err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			snap, err := tx.Get(ref)
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
			var prev *detect.Candidate
			if err == nil {
				var doc subscriptionDoc
				if err := snap.DataTo(&doc); err != nil {
					return err
				}
				prev = doc.toCandidate()
			}
			copied := *c
			return tx.Set(ref, toDoc(merge(prev, &copied, time.Now())))
		})
		if err != nil {
			return nil, fmt.Errorf("upserting subscription %s: %w", c.ID, err)
		}
	}

	return s.List(ctx)
}

func (s *FirestoreStore) Update(ctx context.Context, id string, patch Patch) (*detect.Candidate, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	ref := s.client.Collection(subscriptionsCollection).Doc(id)
	var updated *detect.Candidate
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		var doc subscriptionDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		updated = applyPatch(doc.toCandidate(), patch, time.Now())
		return tx.Set(ref, toDoc(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
