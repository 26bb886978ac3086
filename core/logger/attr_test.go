package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventmq/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("msg", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "msg", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestPanic(t *testing.T) {
	t.Parallel()
	attr := logger.Panic("kaboom")
	require.Equal(t, "panic", attr.Key)
	assert.Equal(t, "kaboom", attr.Value.String())

	attr = logger.Panic(errors.New("wrapped"))
	assert.Equal(t, "wrapped", attr.Value.String())

	empty := logger.Panic(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Timing Tests
// ============================================================================

func TestDuration(t *testing.T) {
	t.Parallel()
	d := 5 * time.Second
	attr := logger.Duration(d)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-500 * time.Millisecond)
	attr := logger.Elapsed(start)
	require.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), 500*time.Millisecond)
}

// ============================================================================
// Identifier Tests
// ============================================================================

func TestMessageID(t *testing.T) {
	t.Parallel()
	attr := logger.MessageID("msg-1")
	require.Equal(t, "message_id", attr.Key)
	assert.Equal(t, "msg-1", attr.Value.String())

	empty := logger.MessageID("")
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Metadata Tests
// ============================================================================

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"handler", logger.Handler("main.ConsumerA"), "handler", "main.ConsumerA"},
		{"queue", logger.Queue("orders"), "queue", "orders"},
		{"component", logger.Component("weakevent"), "component", "weakevent"},
		{"action", logger.Action("raise"), "action", "raise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	attr := logger.Count("subscribers", 3)
	require.Equal(t, "subscribers", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

// ============================================================================
// Debugging Tests
// ============================================================================

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack()
	require.Equal(t, "stack", attr.Key)
	stack := attr.Value.String()
	assert.Contains(t, stack, "TestStack")
	assert.Contains(t, stack, "attr_test.go")
}
