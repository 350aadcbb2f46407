package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

// setupTestRedis creates a Redis client for testing.
// Requires Redis running on localhost:6379.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use DB 15 for testing
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test database: %v", err)
	}

	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		client  redis.UniversalClient
		config  Config
		wantErr bool
	}{
		{
			name:    "nil client",
			client:  nil,
			config:  DefaultConfig(),
			wantErr: true,
		},
		{
			name:    "valid client with defaults",
			client:  redis.NewClient(&redis.Options{}),
			config:  Config{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.client, tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if store.config.KeyPrefix != "qondesk:" {
				t.Errorf("Expected default prefix, got %q", store.config.KeyPrefix)
			}
		})
	}
}

func TestStore_GetSet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store, err := New(client, DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	value, err := store.Get(ctx, qondesk.KeyProjectID, "fallback")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "fallback" {
		t.Errorf("Expected fallback for missing key, got %q", value)
	}

	if err := store.Set(ctx, qondesk.KeyProjectID, "G7zv7LAb"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err = store.Get(ctx, qondesk.KeyProjectID, "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "G7zv7LAb" {
		t.Errorf("Expected G7zv7LAb, got %q", value)
	}

	// Keys must carry the prefix so host options don't collide.
	raw, err := client.Get(ctx, "qondesk:"+qondesk.KeyProjectID).Result()
	if err != nil {
		t.Fatalf("Raw get failed: %v", err)
	}
	if raw != "G7zv7LAb" {
		t.Errorf("Expected prefixed key to hold value, got %q", raw)
	}
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store, err := New(client, DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	saved := &qondesk.Settings{
		ProjectKey:  "proj-key",
		ProjectID:   "G7zv7LAb",
		Environment: qondesk.EnvProduction,
		Mailboxes:   []int{3, 7},
	}
	if err := qondesk.SaveSettings(ctx, store, saved); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := qondesk.LoadSettings(ctx, store)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if len(loaded.Mailboxes) != 2 || loaded.Mailboxes[0] != 3 || loaded.Mailboxes[1] != 7 {
		t.Errorf("Unexpected mailboxes: %v", loaded.Mailboxes)
	}
}
