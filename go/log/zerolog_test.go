package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithJSON(), WithAppName("slackmate"), WithAppVersion("v1.0.0"))

	logger.Info().Str("path", "/chat.postMessage").Msg("test")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "slackmate", line["app"])
	require.Equal(t, "v1.0.0", line["app_version"])
	require.Equal(t, "/chat.postMessage", line["path"])
	require.Equal(t, "test", line["message"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithAppName("slackmate"))

	logger.Warn().Msg("console line")
	require.True(t, strings.Contains(buf.String(), "console line"))
	require.True(t, strings.Contains(buf.String(), "app="))
	require.True(t, strings.Contains(buf.String(), "slackmate"))
}

func TestCtx_WithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Set(New(WithOutput(&buf), WithJSON()))

	ctx := WithRequestID(context.Background(), "request_test")
	Ctx(ctx).Info().Msg("scoped")

	require.Contains(t, buf.String(), `"req_id":"request_test"`)

	buf.Reset()
	Ctx(context.Background()).Info().Msg("global")
	require.Contains(t, buf.String(), "global")
	require.NotContains(t, buf.String(), "req_id")
}
