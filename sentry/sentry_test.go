package sentry

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	tags := NewTags().Set("command", "fix").Set("action", "flush-dns")
	assert.Equal(t, map[string]string{"command": "fix", "action": "flush-dns"}, tags.ToMap())

	extra := NewExtra().Set("args", []string{"flushdns"})
	assert.Equal(t, []string{"flushdns"}, extra.ToMap()["args"])
}

func TestBeforeSendFilters(t *testing.T) {
	send := beforeSend(Config{
		ServiceName:    "itk",
		InstanceID:     "WS-01",
		FilteredErrors: []string{"operation cancelled"},
	})

	dropped := send(&sentry.Event{Message: "operation cancelled by user"}, nil)
	assert.Nil(t, dropped)

	droppedException := send(&sentry.Event{Exception: []sentry.Exception{{Value: "operation cancelled"}}}, nil)
	assert.Nil(t, droppedException)

	kept := send(&sentry.Event{Message: "netsh failed"}, nil)
	require.NotNil(t, kept)
	assert.Equal(t, "itk", kept.Extra["service_name"])
	assert.Equal(t, "WS-01", kept.Extra["instance_id"])
}

func TestCaptureWithoutInit(t *testing.T) {
	assert.Nil(t, CaptureError(nil, nil))
	assert.NotPanics(t, func() {
		CaptureError(errors.New("boom"), &EventOptions{Tags: NewTags().Set("k", "v")})
	})
}

func TestEnvironment(t *testing.T) {
	assert.Equal(t, "dev", Environment("dev"))

	t.Setenv("ITK_ENVIRONMENT", "")
	assert.Equal(t, "production", Environment("1.2.0"))

	t.Setenv("ITK_ENVIRONMENT", "staging")
	assert.Equal(t, "staging", Environment("1.2.0"))
}

func TestInstanceID(t *testing.T) {
	t.Setenv("COMPUTERNAME", "WS-01")
	assert.Equal(t, "WS-01", InstanceID())
}
