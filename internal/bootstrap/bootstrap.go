// Package bootstrap upgrades legacy persisted data and makes sure a config exists.
// It runs once at process start, before the stores are built.
package bootstrap

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/logger"
	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Policy string

const (
	// PolicyConvert rewrites legacy launches into the current shape.
	PolicyConvert Policy = "convert"
	// PolicyReset deletes legacy launches and config so defaults load instead.
	PolicyReset Policy = "reset"
)

// legacyEndOffset is added to the start date of legacy launches without an end date.
const legacyEndOffset = 14 * 24 * time.Hour

type Result struct {
	AlreadyMigrated bool
	LegacyFound     bool
	Converted       int
	Reset           bool
	ConfigCreated   bool
	ColumnsRepaired bool
}

type options struct {
	policy Policy
	now    func() time.Time
	log    logrus.FieldLogger
}

type Option func(*options)

func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	o := options{policy: PolicyConvert, now: time.Now, log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy != PolicyReset {
		o.policy = PolicyConvert
	}
	o.log = o.log.WithField("component", "bootstrap")
	return o
}

// Run migrates legacy data if that has not happened yet, then ensures the config exists.
func Run(kv storage.KV, keys storage.Keys, opts ...Option) Result {
	o := buildOptions(opts)
	res := migrate(kv, keys, o)
	res.ConfigCreated, res.ColumnsRepaired = ensureConfig(kv, keys, o)
	return res
}

// Migrate performs the one-time legacy upgrade gated by the migration marker.
func Migrate(kv storage.KV, keys storage.Keys, opts ...Option) Result {
	return migrate(kv, keys, buildOptions(opts))
}

// EnsureConfig writes the default config when none is stored and restores the
// default columns when the stored list is empty.
func EnsureConfig(kv storage.KV, keys storage.Keys, opts ...Option) (created, repaired bool) {
	return ensureConfig(kv, keys, buildOptions(opts))
}

// Migrated reports whether the migration marker is present.
func Migrated(kv storage.KV, keys storage.Keys) (bool, error) {
	_, found, err := kv.Get(keys.Migrated)
	return found, err
}

func migrate(kv storage.KV, keys storage.Keys, o options) Result {
	var res Result

	done, err := Migrated(kv, keys)
	if err != nil {
		o.log.WithError(err).Error("failed read migration marker")
		return res
	}
	if done {
		res.AlreadyMigrated = true
		return res
	}

	if err := upgrade(kv, keys, o, &res); err != nil {
		o.log.WithError(err).Error("failed migrate legacy launches")
	}

	if err := kv.Set(keys.Migrated, "true"); err != nil {
		o.log.WithError(err).Error("failed write migration marker")
	}
	return res
}

func upgrade(kv storage.KV, keys storage.Keys, o options, res *Result) error {
	raw, found, err := kv.Get(keys.Launches)
	if err != nil || !found {
		return err
	}

	var entries []map[string]jsoniter.RawMessage
	if err := json.UnmarshalFromString(raw, &entries); err != nil {
		return err
	}
	var launches []LegacyLaunch
	if err := json.UnmarshalFromString(raw, &launches); err != nil {
		return err
	}
	if !needsConversion(entries, launches) {
		return nil
	}
	res.LegacyFound = true

	if o.policy == PolicyReset {
		o.log.Warn("legacy data found, resetting launches and config")
		if err := kv.Delete(keys.Launches); err != nil {
			return err
		}
		res.Reset = true
		return kv.Delete(keys.Config)
	}

	converted := ConvertLegacy(launches, o.now())
	if err := storage.SaveJSON(kv, keys.Launches, converted); err != nil {
		return err
	}
	res.Converted = len(converted)
	o.log.WithField("launches", res.Converted).Info("converted legacy launches")
	return nil
}

func ensureConfig(kv storage.KV, keys storage.Keys, o options) (created, repaired bool) {
	var cfg models.AppConfig
	found, err := storage.LoadJSON(kv, keys.Config, &cfg)
	switch {
	case err != nil && !found:
		o.log.WithError(err).Error("failed read config")
		return false, false
	case err != nil:
		// A malformed config is left for the config store to replace.
		o.log.WithError(err).Warn("stored config is unreadable")
		return false, false
	case !found:
		if err := storage.SaveJSON(kv, keys.Config, models.DefaultAppConfig()); err != nil {
			o.log.WithError(err).Error("failed write default config")
			return false, false
		}
		return true, false
	}

	if len(cfg.Columns) > 0 {
		return false, false
	}
	cfg.Columns = models.DefaultColumns()
	if err := storage.SaveJSON(kv, keys.Config, cfg); err != nil {
		o.log.WithError(err).Error("failed repair config columns")
		return false, false
	}
	o.log.Info("restored default columns")
	return false, true
}

// LegacyLaunch is the launch shape written before shop/status/priority became ids.
type LegacyLaunch struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Shop         string                       `json:"shop"`
	Status       string                       `json:"status"`
	Priority     string                       `json:"priority"`
	LaunchDate   string                       `json:"launchDate"`
	StartDate    string                       `json:"startDate"`
	EndDate      string                       `json:"endDate"`
	Notes        string                       `json:"notes"`
	Attachments  []string                     `json:"attachments"`
	Subtasks     []models.SubTask             `json:"subtasks"`
	CustomFields map[string]models.FieldValue `json:"customFields"`
	CreatedAt    string                       `json:"createdAt"`
	UpdatedAt    string                       `json:"updatedAt"`
}

func needsConversion(entries []map[string]jsoniter.RawMessage, launches []LegacyLaunch) bool {
	for _, e := range entries {
		for _, key := range []string{"launchDate", "budget", "responsible"} {
			if _, ok := e[key]; ok {
				return true
			}
		}
	}
	for _, l := range launches {
		if hasName(models.DefaultShops(), l.Shop) || hasName(models.DefaultStatuses(), l.Status) {
			return true
		}
	}
	return false
}

func hasName(items []models.ConfigItem, name string) bool {
	for _, item := range items {
		if item.Name == name {
			return true
		}
	}
	return false
}

// nameToID maps a display name to its default taxonomy id. Values that already are
// ids pass through; anything else is slugified.
func nameToID(value string, items []models.ConfigItem) string {
	for _, item := range items {
		if item.Name == value {
			return item.ID
		}
	}
	for _, item := range items {
		if item.ID == value {
			return value
		}
	}
	return store.Slugify(value)
}

// ConvertLegacy maps legacy launches onto the current shape.
func ConvertLegacy(old []LegacyLaunch, now time.Time) []models.Launch {
	out := make([]models.Launch, 0, len(old))
	for _, l := range old {
		start := l.StartDate
		if start == "" {
			start = l.LaunchDate
		}
		if start == "" {
			start = now.UTC().Format(time.DateOnly)
		}
		end := l.EndDate
		if end == "" {
			if d, ok := models.ParseDate(start); ok {
				end = d.Add(legacyEndOffset).Format(time.DateOnly)
			}
		}

		converted := models.Launch{
			ID:           l.ID,
			Name:         l.Name,
			Shop:         nameToID(l.Shop, models.DefaultShops()),
			Status:       nameToID(l.Status, models.DefaultStatuses()),
			Priority:     nameToID(l.Priority, models.DefaultPriorities()),
			StartDate:    start,
			EndDate:      end,
			Notes:        l.Notes,
			Attachments:  l.Attachments,
			Subtasks:     l.Subtasks,
			CustomFields: l.CustomFields,
			CreatedAt:    parseTimestamp(l.CreatedAt, now),
			UpdatedAt:    parseTimestamp(l.UpdatedAt, now),
		}
		converted.Normalize()
		out = append(out, converted)
	}
	return out
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	if t, ok := models.ParseDate(s); ok {
		return t
	}
	return fallback
}
