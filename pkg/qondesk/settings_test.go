package qondesk

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is a minimal OptionStore for package-local tests.
type mapStore struct {
	values map[string]string
	getErr error
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]string)}
}

func (m *mapStore) Get(_ context.Context, key, def string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *mapStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestSettings_Configured(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
		want     bool
	}{
		{"nil", nil, false},
		{"empty", &Settings{}, false},
		{"key only", &Settings{ProjectKey: "k"}, false},
		{"id only", &Settings{ProjectID: "i"}, false},
		{"both", &Settings{ProjectKey: "k", ProjectID: "i"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.Configured())
		})
	}
}

func TestSettings_MailboxAllowed(t *testing.T) {
	t.Run("empty list allows all", func(t *testing.T) {
		s := &Settings{}
		for _, id := range []int{1, 5, 42} {
			assert.True(t, s.MailboxAllowed(id), "mailbox %d", id)
		}
	})

	t.Run("allow-list filters", func(t *testing.T) {
		s := &Settings{Mailboxes: []int{3, 7}}
		assert.False(t, s.MailboxAllowed(5))
		assert.True(t, s.MailboxAllowed(7))
		assert.True(t, s.MailboxAllowed(3))
	})
}

func TestMailboxCodec(t *testing.T) {
	t.Run("encode empty as json array", func(t *testing.T) {
		assert.Equal(t, "[]", EncodeMailboxes(nil))
		assert.Equal(t, "[]", EncodeMailboxes([]int{}))
	})

	t.Run("round trip", func(t *testing.T) {
		encoded := EncodeMailboxes([]int{2, 5})
		assert.Equal(t, "[2,5]", encoded)
		assert.Equal(t, []int{2, 5}, DecodeMailboxes(encoded))
	})

	t.Run("malformed input decodes empty", func(t *testing.T) {
		assert.Empty(t, DecodeMailboxes("not json"))
		assert.Empty(t, DecodeMailboxes(""))
		assert.Empty(t, DecodeMailboxes("null"))
	})
}

func TestParseMailboxIDs(t *testing.T) {
	t.Run("string coercion", func(t *testing.T) {
		assert.Equal(t, []int{2, 5}, ParseMailboxIDs([]string{"2", "5"}))
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		assert.Equal(t, []int{7}, ParseMailboxIDs([]string{" 7 "}))
	})

	t.Run("non-integers skipped", func(t *testing.T) {
		assert.Equal(t, []int{3}, ParseMailboxIDs([]string{"3", "abc", ""}))
	})
}

func TestLoadSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults for empty store", func(t *testing.T) {
		settings, err := LoadSettings(ctx, newMapStore())
		require.NoError(t, err)

		assert.False(t, settings.Configured())
		assert.Equal(t, EnvProduction, settings.Environment)
		assert.Empty(t, settings.Mailboxes)
	})

	t.Run("invalid environment falls back to production", func(t *testing.T) {
		store := newMapStore()
		store.values[KeyEnvironment] = "2"

		settings, err := LoadSettings(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, settings.Environment)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := newMapStore()
		store.getErr = fmt.Errorf("connection refused")

		_, err := LoadSettings(ctx, store)
		assert.Error(t, err)
	})

	t.Run("nil store rejected", func(t *testing.T) {
		_, err := LoadSettings(ctx, nil)
		assert.Error(t, err)
	})
}

func TestSaveSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("persists all keys", func(t *testing.T) {
		store := newMapStore()
		err := SaveSettings(ctx, store, &Settings{
			ProjectKey:  " proj-key ",
			ProjectID:   "G7zv7LAb",
			Environment: EnvSandbox,
			Mailboxes:   []int{2, 5},
		})
		require.NoError(t, err)

		assert.Equal(t, "proj-key", store.values[KeyProjectKey], "key is trimmed")
		assert.Equal(t, "G7zv7LAb", store.values[KeyProjectID])
		assert.Equal(t, "1", store.values[KeyEnvironment])
		assert.Equal(t, "[2,5]", store.values[KeyMailboxes])
	})

	t.Run("invalid environment stored as production", func(t *testing.T) {
		store := newMapStore()
		err := SaveSettings(ctx, store, &Settings{
			ProjectKey:  "k",
			ProjectID:   "i",
			Environment: Environment("banana"),
		})
		require.NoError(t, err)
		assert.Equal(t, "0", store.values[KeyEnvironment])
	})

	t.Run("nil settings rejected", func(t *testing.T) {
		assert.Error(t, SaveSettings(ctx, newMapStore(), nil))
	})
}
