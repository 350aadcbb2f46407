package firestore

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

// setupTestStore creates a store against the Firestore emulator.
// Set FIRESTORE_EMULATOR_HOST to enable these tests.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "qondesk-test")
	if err != nil {
		t.Skipf("Firestore emulator not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	store, err := New(client, Config{Collection: "qondesk_options_test"})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(nil, Config{})
	if err == nil {
		t.Fatal("Expected error for nil client")
	}
}

func TestStore_GetSet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	value, err := store.Get(ctx, qondesk.KeyEnvironment, "0")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "0" {
		t.Errorf("Expected default for missing key, got %q", value)
	}

	if err := store.Set(ctx, qondesk.KeyEnvironment, "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err = store.Get(ctx, qondesk.KeyEnvironment, "0")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "1" {
		t.Errorf("Expected 1, got %q", value)
	}
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	saved := &qondesk.Settings{
		ProjectKey:  "proj-key",
		ProjectID:   "G7zv7LAb",
		Environment: qondesk.EnvProduction,
		Mailboxes:   []int{4},
	}
	if err := qondesk.SaveSettings(ctx, store, saved); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := qondesk.LoadSettings(ctx, store)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !loaded.Configured() {
		t.Error("Expected configured settings")
	}
	if len(loaded.Mailboxes) != 1 || loaded.Mailboxes[0] != 4 {
		t.Errorf("Unexpected mailboxes: %v", loaded.Mailboxes)
	}
}
