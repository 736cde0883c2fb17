package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewZapLoggerTo("debug", &buf)
	require.NoError(t, err)

	ctx := context.Background()
	log.With("req_id", "42").Info(ctx, "hello", "k", "v")
	log.Debug(ctx, "dbg")
	require.NoError(t, log.Sync())

	out := buf.String()
	for _, s := range []string{`"level":"info"`, `"msg":"hello"`, `"req_id":"42"`, `"k":"v"`, `"msg":"dbg"`} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewZapLoggerTo("warn", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
}

func TestZapLogger_BadLevel(t *testing.T) {
	_, err := NewZapLoggerTo("loud", &bytes.Buffer{})
	require.Error(t, err)
}
