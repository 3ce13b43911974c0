package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info("hidden")
	l.WithField("key", "creative-launch-tracker").Warn("failed save")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "failed save")
	assert.Contains(t, out, "key=creative-launch-tracker")
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "loud")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
