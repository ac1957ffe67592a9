package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("prod", &buf)

	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "ezzleads", line["service"])
	assert.Equal(t, "v", line["k"])
}

func TestNewWithWriterDevIsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("dev", &buf)

	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	l.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
