package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestZeroLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZeroLogger(&buf, LevelInfo, Fields{"service": "sportsbook"})

	l.Info("bet placed", map[string]interface{}{"bet_id": "b1"})
	l.Error(errors.New("boom"), nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "bet placed", entries[0]["message"])
	assert.Equal(t, "b1", entries[0]["bet_id"])
	assert.Equal(t, "sportsbook", entries[0]["service"])
	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])
}

func TestZeroLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewZeroLogger(&buf, LevelInfo, nil)

	l.Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	l.SetLevel(LevelDebug)
	l.Debug("shown", nil)
	assert.Len(t, decodeLines(t, &buf), 1)

	buf.Reset()
	l.SetLevel(LevelOff)
	l.Info("muted", nil)
	assert.Zero(t, buf.Len())
}

func TestZeroLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	base := NewZeroLogger(&buf, LevelInfo, Fields{"service": "sportsbook"})
	child := base.With(Fields{"module": "settlement"})

	child.Info("settled", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "settlement", entries[0]["module"])
	assert.Equal(t, "sportsbook", entries[0]["service"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelOff, ParseLevel("off"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, "INFO", LevelInfo.String())
}
