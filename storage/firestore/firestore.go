// Package firestore provides a Firestore implementation of the
// qondesk.OptionStore interface, storing one document per option key.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store implements qondesk.OptionStore using Google Cloud Firestore.
type Store struct {
	client     *firestore.Client
	collection string
}

// Config holds Firestore store configuration.
type Config struct {
	// Collection is the Firestore collection for option documents.
	// Default: "qondesk_options"
	Collection string
}

// optionDoc is the persisted document shape.
type optionDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// New creates a new Firestore option store.
func New(client *firestore.Client, config Config) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is required")
	}
	if config.Collection == "" {
		config.Collection = "qondesk_options"
	}

	return &Store{
		client:     client,
		collection: config.Collection,
	}, nil
}

// Get implements qondesk.OptionStore.
func (s *Store) Get(ctx context.Context, key, def string) (string, error) {
	snap, err := s.client.Collection(s.collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return def, nil
		}
		return "", fmt.Errorf("firestore get %q: %w", key, err)
	}

	var doc optionDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", fmt.Errorf("firestore decode %q: %w", key, err)
	}
	return doc.Value, nil
}

// Set implements qondesk.OptionStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	_, err := s.client.Collection(s.collection).Doc(key).Set(ctx, optionDoc{
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("firestore set %q: %w", key, err)
	}
	return nil
}
