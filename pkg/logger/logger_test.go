package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velais/sprintgate/pkg/logger"
	"github.com/velais/sprintgate/pkg/requestid"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("emits JSON by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", "k", "v")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "v", record["k"])
	})

	t.Run("debug is filtered at the default level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Debug("invisible")

		assert.Empty(t, buf.String())
	})

	t.Run("development preset lowers the level and tags the service", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("sprintgate"))
		log.Debug("visible")

		out := buf.String()
		assert.Contains(t, out, "visible")
		assert.Contains(t, out, "service=sprintgate")
		assert.Contains(t, out, "env=development")
	})

	t.Run("static attributes appear on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithAttr(slog.String("version", "1.2.3")))
		log.Info("one")
		log.Info("two")

		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"version":"1.2.3"`)))
	})

	t.Run("panics on an unknown format", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	t.Run("injects request-scoped attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)

		ctx := requestid.WithContext(context.Background(), "req-42")
		log.InfoContext(ctx, "handled")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "req-42", record["request_id"])
	})

	t.Run("skips attributes absent from context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(requestid.LoggerExtractor(), nil),
		)
		log.InfoContext(context.Background(), "handled")

		assert.NotContains(t, buf.String(), "request_id")
	})
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "tenant", logger.Tenant("acme").Key)
	assert.Equal(t, "acme", logger.Tenant("acme").Value.String())
	assert.Equal(t, "org_id", logger.OrgID("org_1").Key)
	assert.Equal(t, "component", logger.Component("respcache").Key)
}
