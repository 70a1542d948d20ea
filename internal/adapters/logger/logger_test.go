package logger_adapter

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"accomodate-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFluent struct {
	mu    sync.Mutex
	posts []map[string]interface{}
	tags  []string
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, message.(port.Fields))
	return nil
}

func (f *fakeFluent) Close() error { return nil }

func TestSlogAdapterWritesFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("disk full"), port.Fields{"b": 2, "a": 1})

	out := buf.String()
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "disk full")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("a=1")), bytes.Index(buf.Bytes(), []byte("b=2")))
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn, IsJSON: true})

	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestFluentAdapterFiltersAndMerges(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	logger := adapter.WithFields(port.Fields{"service_name": "accomodate"})
	logger.Debug("dropped", nil)
	logger.Error("failed", errors.New("x"), port.Fields{"listing_id": "h1"})

	require.Len(t, client.posts, 1)
	assert.Equal(t, "error", client.tags[0])
	assert.Equal(t, "accomodate", client.posts[0]["service_name"])
	assert.Equal(t, "h1", client.posts[0]["listing_id"])
	assert.Equal(t, "x", client.posts[0]["error"])
	assert.Equal(t, "failed", client.posts[0]["message"])
}

func TestMultiloggerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	logger, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &a}),
		NewSlogAdapter(SlogConfig{Writer: &b}),
	)
	require.NoError(t, err)

	logger.WithFields(port.Fields{"trace_id": "t1"}).Info("hello", nil)

	assert.Contains(t, a.String(), "trace_id=t1")
	assert.Contains(t, b.String(), "trace_id=t1")

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}
