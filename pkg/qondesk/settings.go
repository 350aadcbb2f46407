// Package qondesk holds the shared types for the Qonversion helpdesk
// integration: the persisted settings model, the host option-store interface
// and the ambient Logger/Metrics interfaces.
package qondesk

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Option keys under the module namespace. The host stores these in its
// key-value option table.
const (
	KeyProjectKey  = "qondesk.project_key"
	KeyProjectID   = "qondesk.project_id"
	KeyEnvironment = "qondesk.environment"
	KeyMailboxes   = "qondesk.mailboxes"
)

// Environment selects the Qonversion data partition for dashboard links.
// Persisted as "0"/"1" to match the dashboard query parameter.
type Environment string

const (
	EnvProduction Environment = "0"
	EnvSandbox    Environment = "1"
)

// Valid reports whether e is a known environment value.
func (e Environment) Valid() bool {
	return e == EnvProduction || e == EnvSandbox
}

// Settings holds the persisted integration configuration.
type Settings struct {
	// ProjectKey is the Qonversion project key used as the bearer credential.
	ProjectKey string

	// ProjectID is the Qonversion project identifier used in dashboard links.
	ProjectID string

	// Environment selects production vs sandbox dashboard links.
	Environment Environment

	// Mailboxes is the mailbox allow-list. Empty means every mailbox shows
	// the sidebar.
	Mailboxes []int
}

// Configured reports whether both credentials required for API access and
// dashboard links have been saved.
func (s *Settings) Configured() bool {
	return s != nil && s.ProjectKey != "" && s.ProjectID != ""
}

// MailboxAllowed reports whether the sidebar should show for the given
// mailbox. An empty allow-list allows every mailbox.
func (s *Settings) MailboxAllowed(mailboxID int) bool {
	if s == nil || len(s.Mailboxes) == 0 {
		return true
	}
	for _, id := range s.Mailboxes {
		if id == mailboxID {
			return true
		}
	}
	return false
}

// LoadSettings reads the integration settings from the option store.
// Missing keys yield zero values; a malformed mailbox list yields an empty
// allow-list rather than an error, matching the permissive host behavior.
func LoadSettings(ctx context.Context, store OptionStore) (*Settings, error) {
	if store == nil {
		return nil, fmt.Errorf("option store is required")
	}

	projectKey, err := store.Get(ctx, KeyProjectKey, "")
	if err != nil {
		return nil, fmt.Errorf("load project key: %w", err)
	}
	projectID, err := store.Get(ctx, KeyProjectID, "")
	if err != nil {
		return nil, fmt.Errorf("load project id: %w", err)
	}
	env, err := store.Get(ctx, KeyEnvironment, string(EnvProduction))
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	mailboxesJSON, err := store.Get(ctx, KeyMailboxes, "[]")
	if err != nil {
		return nil, fmt.Errorf("load mailboxes: %w", err)
	}

	environment := Environment(env)
	if !environment.Valid() {
		environment = EnvProduction
	}

	return &Settings{
		ProjectKey:  strings.TrimSpace(projectKey),
		ProjectID:   strings.TrimSpace(projectID),
		Environment: environment,
		Mailboxes:   DecodeMailboxes(mailboxesJSON),
	}, nil
}

// SaveSettings writes the integration settings to the option store.
// The mailbox allow-list is stored as a JSON array of integers.
func SaveSettings(ctx context.Context, store OptionStore, settings *Settings) error {
	if store == nil {
		return fmt.Errorf("option store is required")
	}
	if settings == nil {
		return fmt.Errorf("settings are required")
	}

	environment := settings.Environment
	if !environment.Valid() {
		environment = EnvProduction
	}

	if err := store.Set(ctx, KeyProjectKey, strings.TrimSpace(settings.ProjectKey)); err != nil {
		return fmt.Errorf("save project key: %w", err)
	}
	if err := store.Set(ctx, KeyProjectID, strings.TrimSpace(settings.ProjectID)); err != nil {
		return fmt.Errorf("save project id: %w", err)
	}
	if err := store.Set(ctx, KeyEnvironment, string(environment)); err != nil {
		return fmt.Errorf("save environment: %w", err)
	}
	if err := store.Set(ctx, KeyMailboxes, EncodeMailboxes(settings.Mailboxes)); err != nil {
		return fmt.Errorf("save mailboxes: %w", err)
	}
	return nil
}

// EncodeMailboxes encodes a mailbox allow-list as a JSON array of integers.
// A nil list encodes as "[]".
func EncodeMailboxes(ids []int) string {
	if len(ids) == 0 {
		return "[]"
	}
	data, err := json.Marshal(ids)
	if err != nil {
		// []int cannot fail to marshal; keep the store consistent anyway.
		return "[]"
	}
	return string(data)
}

// DecodeMailboxes decodes a JSON mailbox allow-list. Malformed input yields
// an empty list.
func DecodeMailboxes(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{}
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []int{}
	}
	if ids == nil {
		return []int{}
	}
	return ids
}

// ParseMailboxIDs coerces form values ("2", "5") into mailbox IDs.
// Values that are not integers are skipped.
func ParseMailboxIDs(values []string) []int {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
