package storage

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultAppName prefixes every persisted key.
const DefaultAppName = "creative-launch-tracker"

// MigrationVersion is the schema generation recorded by the migration marker.
const MigrationVersion = 3

// KV is the persistent key-value store shared by the stores and the bootstrap.
type KV interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

type Keys struct {
	Launches string
	Config   string
	Dark     string
	Migrated string
}

func NewKeys(app string) Keys {
	if app == "" {
		app = DefaultAppName
	}
	return Keys{
		Launches: app,
		Config:   app + "-config",
		Dark:     app + "-dark",
		Migrated: fmt.Sprintf("%s-migrated-v%d", app, MigrationVersion),
	}
}

// LoadJSON decodes the value stored under key into v. found is false when the key is absent.
func LoadJSON(kv KV, key string, v any) (found bool, err error) {
	raw, found, err := kv.Get(key)
	if err != nil || !found {
		return false, err
	}
	if err := json.UnmarshalFromString(raw, v); err != nil {
		return true, errors.Wrapf(err, "failed decode %s", key)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key. A nil slice is stored as "[]".
func SaveJSON(kv KV, key string, v any) error {
	s, err := json.MarshalToString(v)
	if err != nil {
		return errors.Wrapf(err, "failed encode %s", key)
	}
	if s == "null" || s == "" {
		s = "[]"
	}
	return kv.Set(key, s)
}

func LoadDarkMode(kv KV, keys Keys) bool {
	v, found, err := kv.Get(keys.Dark)
	return err == nil && found && v == "true"
}

func SaveDarkMode(kv KV, keys Keys, dark bool) error {
	if dark {
		return kv.Set(keys.Dark, "true")
	}
	return kv.Set(keys.Dark, "false")
}
