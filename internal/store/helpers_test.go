package store

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
)

var testKeys = storage.NewKeys("")

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type fixture struct {
	kv    *storage.Memory
	clock *fakeClock
	log   *test.Hook
	opts  []Option
}

func newFixture() *fixture {
	l, hook := test.NewNullLogger()
	clock := newFakeClock()
	return &fixture{
		kv:    storage.NewMemory(),
		clock: clock,
		log:   hook,
		opts:  []Option{WithClock(clock.Now), WithLogger(l)},
	}
}

func (f *fixture) configStore() *ConfigStore {
	return NewConfigStore(f.kv, testKeys, f.opts...)
}

func (f *fixture) launchStore() *LaunchStore {
	return NewLaunchStore(f.kv, testKeys, f.opts...)
}

// storeWith returns a launch store holding only the given launches.
func (f *fixture) storeWith(t *testing.T, launches ...models.Launch) *LaunchStore {
	t.Helper()
	require.NoError(t, storage.SaveJSON(f.kv, testKeys.Launches, launches))
	return f.launchStore()
}

func (f *fixture) errorLogged() bool {
	for _, e := range f.log.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			return true
		}
	}
	return false
}

func launch(id, shop, status, priority string) models.Launch {
	return models.Launch{
		ID:       id,
		Name:     "Launch " + id,
		Shop:     shop,
		Status:   status,
		Priority: priority,
	}
}

func ids(launches []models.Launch) []string {
	out := make([]string, len(launches))
	for i, l := range launches {
		out[i] = l.ID
	}
	return out
}
