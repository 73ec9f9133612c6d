package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	var out bytes.Buffer
	p := NewProfiler(zerolog.New(&out))

	clock := time.Unix(100, 0)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 29 {
		clock = clock.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, out.String())

	clock = clock.Add(600 * time.Millisecond)
	require.True(t, p.Tick())

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "profiler", line["component"])
	assert.Equal(t, "frame stats", line["message"])
	assert.InDelta(t, 30.0/(29.0/60+0.6), line["fps"], 1e-4)
	assert.InDelta(t, 30.0/(29.0/60+0.6), p.FPS(), 1e-4)
}

func TestProfilerZeroIntervalReportsEveryTick(t *testing.T) {
	var out bytes.Buffer
	p := NewProfiler(zerolog.New(&out))
	p.SetInterval(0)

	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	assert.True(t, p.Tick())
	assert.True(t, p.Tick())
}
