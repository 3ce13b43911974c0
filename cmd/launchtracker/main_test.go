package main

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWithApp_ClosesDatabaseWhenCommandFails(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	var opened *app
	err := withApp(func(a *app) error {
		opened = a
		require.NoError(t, a.database.Ping())
		return errors.New("boom")
	})

	require.EqualError(t, err, "boom")
	require.NotNil(t, opened)
	assert.Error(t, opened.database.Ping())
}

func TestTrashRestore_UnknownIDReturnsError(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	_, err := execute(t, "trash", "restore", "launch-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch-missing is not in the trash")
}

func TestExport_ToStdout(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	out, err := execute(t, "export", "csv", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"Nome","Shop","Stato"`)
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	_, err := execute(t, "export", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}
