package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func logSingleField(t *testing.T, key string, value any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test", key, value)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRedactionPasswordField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "password", "Xk#9v€...")
	require.Equal(t, "[REDACTED]", out["password"])
}

func TestRedactionIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "Token", "abc.token.xyz")
	require.Equal(t, "[REDACTED]", out["Token"])
}

func TestRedactionKeepsOrdinaryFields(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "label", "github")
	require.Equal(t, "github", out["label"])
}

func TestRedactionNestedGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test", slog.Group("record", slog.String("label", "mail"), slog.String("password", "pw")))

	var out struct {
		Record map[string]any `json:"record"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "mail", out.Record["label"])
	require.Equal(t, "[REDACTED]", out.Record["password"])
}

func TestRedactionWithAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil))).With("secret", "hmac-key")
	logger.Info("test")
	require.NotContains(t, buf.String(), "hmac-key")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewWritesToRotatingFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "logs", "vaultpass.log")

	logger, closer, err := New(os.Stderr, Options{Level: "info", File: file})
	require.NoError(t, err)
	logger.Info("hello", "password", "hunter2")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
	require.NotContains(t, string(data), "hunter2")
}
