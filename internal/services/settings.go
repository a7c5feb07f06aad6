package services

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const EntitySettings = "settings"

// Writable site setting keys.
const (
	SettingCompanyName    = "company_name"
	SettingPhone          = "phone"
	SettingPhoneSecondary = "phone_secondary"
	SettingEmail          = "email"
	SettingAddress        = "address"
)

var allowedSettings = mapset.NewSet(
	SettingCompanyName,
	SettingPhone,
	SettingPhoneSecondary,
	SettingEmail,
	SettingAddress,
)

const upsertSetting = `
INSERT INTO site_settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

type SettingsStore struct {
	gw     *db.Gateway
	events *EventHub
}

func NewSettingsStore(gw *db.Gateway, events *EventHub) *SettingsStore {
	return &SettingsStore{gw: gw, events: events}
}

// AllowedSettingKeys returns the writable keys in sorted order.
func AllowedSettingKeys() []string {
	keys := allowedSettings.ToSlice()
	sort.Strings(keys)
	return keys
}

func (s *SettingsStore) Get(ctx context.Context) (map[string]string, error) {
	rows := []models.SiteSettingRow{}
	if err := s.gw.Select(ctx, &rows, `SELECT key, value, updated_at FROM site_settings ORDER BY key`); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		if allowedSettings.Contains(row.Key) {
			settings[row.Key] = row.Value
		}
	}
	return settings, nil
}

// Update writes every allow-listed key of values in one atomic batch. Other
// keys are ignored. It returns the keys that were written.
func (s *SettingsStore) Update(ctx context.Context, values map[string]string) ([]string, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		if allowedSettings.Contains(key) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return keys, nil
	}
	sort.Strings(keys)
	stamp := now()
	stmts := make([]db.Statement, 0, len(keys))
	for _, key := range keys {
		stmts = append(stmts, db.Statement{Query: upsertSetting, Args: []interface{}{key, values[key], stamp}})
	}
	if err := s.gw.Batch(ctx, stmts); err != nil {
		return nil, ErrPersistence("Could not save settings", err)
	}
	s.events.Publish(EntitySettings, ActionUpdated, "")
	return keys, nil
}
