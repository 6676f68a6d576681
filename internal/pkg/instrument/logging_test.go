package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLoggingHandler(t *testing.T) {
	t.Run("MasksAndAddsContext", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		logger := slog.New(newHandler(&buf, &Config{ServiceName: "otpgate", MaskFields: []string{"Email"}}, nil))
		ctx := SetCorrelationID(context.Background(), "cid-1")

		// Act
		logger.InfoContext(ctx, "otp issued",
			"email", "ann@example.com",
			"otp", "1234",
			"body", map[string]any{"password": "s3cret", "name": "Ann"},
			"raw", `{"refresh_token":"abc"}`,
		)

		// Assert
		line := decodeLine(t, &buf)
		assert.Equal(t, "otp issued", line["msg"])
		assert.Equal(t, "INFO", line["severity"])
		assert.Equal(t, "cid-1", line["correlation_id"])
		assert.Equal(t, "otpgate", line["service"])
		assert.Equal(t, maskedValue, line["email"])
		assert.Equal(t, maskedValue, line["otp"])
		assert.Equal(t, map[string]any{"password": maskedValue, "name": "Ann"}, line["body"])
		assert.JSONEq(t, `{"refresh_token":"***"}`, line["raw"].(string))
	})

	t.Run("LevelFilter", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		logger := slog.New(newHandler(&buf, &Config{LogLevel: "warn"}, nil))

		// Act
		logger.Info("dropped")

		// Assert
		assert.Zero(t, buf.Len())
	})

	t.Run("MaskedWithAttrs", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		logger := slog.New(newHandler(&buf, &Config{}, nil)).With("password", "s3cret")

		// Act
		logger.Warn("login failed")

		// Assert
		assert.Equal(t, maskedValue, decodeLine(t, &buf)["password"])
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewDisabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{ServiceName: "otpgate"})
	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("x"))
	assert.NoError(t, ins.Shutdown(context.Background()))
}
