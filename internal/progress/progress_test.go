package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_New(t *testing.T) {
	info := NewProgress().Info()
	assert.Equal(t, ProgressStatusIdle, info.Status)
	assert.Empty(t, info.Stage)
}

func TestProgress_StartStage(t *testing.T) {
	p := NewProgress()

	assert.True(t, p.StartStage(StageResolve, 100))
	p.Update(StageResolve, 40, 100)

	info := p.Info()
	assert.Equal(t, ProgressStatusRunning, info.Status)
	assert.Equal(t, StageResolve, info.Stage)
	assert.Equal(t, int64(40), info.Current)
	assert.Equal(t, 40.0, info.GetPercentage())
	assert.NotZero(t, info.StartTime)

	assert.True(t, p.StartStage(StageProbe, 10))
	assert.Equal(t, int64(0), p.Info().Current)
	assert.False(t, p.StartStage(StageProbe, 10))
}

func TestProgress_UpdateIgnoresOtherStage(t *testing.T) {
	p := NewProgress()
	p.StartStage(StageProbe, 10)

	p.Update(StageResolve, 9, 10)
	assert.Equal(t, int64(0), p.Info().Current)

	p.Update(StageProbe, 5, 10)
	p.Update(StageProbe, 3, 10)
	assert.Equal(t, int64(5), p.Info().Current)
}

func TestProgress_SetStatus(t *testing.T) {
	p := NewProgress()
	p.SetStatus(ProgressStatusComplete, "done")

	info := p.Info()
	assert.Equal(t, ProgressStatusComplete, info.Status)
	assert.Equal(t, "done", info.Message)
}

func TestProgressInfo_UpdateETA(t *testing.T) {
	now := time.Now()
	info := ProgressInfo{
		Status:         ProgressStatusRunning,
		Current:        25,
		Total:          100,
		StageStartTime: now.Add(-10 * time.Second),
		LastUpdateTime: now,
	}

	info.UpdateETA()
	assert.InDelta(t, 30*time.Second, info.EstimatedETA, float64(time.Second))

	info.Current = 100
	info.UpdateETA()
	assert.Zero(t, info.EstimatedETA)
}

func TestProgressInfo_GetPercentage(t *testing.T) {
	assert.Equal(t, 0.0, (&ProgressInfo{}).GetPercentage())
	assert.Equal(t, 100.0, (&ProgressInfo{Current: 12, Total: 10}).GetPercentage())
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDisplayManager_LogsStageChanges(t *testing.T) {
	out := &syncBuffer{}
	pdm := NewProgressDisplayManager(zerolog.New(out), &ProgressDisplayConfig{
		DisplayInterval: time.Hour,
		EnableProgress:  true,
	})
	pdm.Start()

	pdm.StartStage(StageDiscovery, 7)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "discovery")
	}, time.Second, 5*time.Millisecond)

	pdm.Reporter(StageDiscovery).Update(7, 7)
	pdm.SetStatus(ProgressStatusComplete, "finished")
	pdm.Stop()
	pdm.Stop()

	logs := out.String()
	assert.Contains(t, logs, "finished")
	assert.Contains(t, logs, `"component":"Progress"`)
}

func TestDisplayManager_Disabled(t *testing.T) {
	out := &syncBuffer{}
	pdm := NewProgressDisplayManager(zerolog.New(out), &ProgressDisplayConfig{EnableProgress: false})

	pdm.Start()
	pdm.StartStage(StageProbe, 3)
	pdm.Stop()

	assert.Empty(t, out.String())
}

func TestFormat(t *testing.T) {
	pdm := NewProgressDisplayManager(zerolog.Nop(), nil)

	assert.Empty(t, pdm.format(ProgressInfo{Status: ProgressStatusIdle}))

	line := pdm.format(ProgressInfo{Status: ProgressStatusRunning, Stage: StageProbe, Current: 5, Total: 10})
	assert.Contains(t, line, "http")
	assert.Contains(t, line, "50.0%")
	assert.Contains(t, line, "(5/10)")
}
