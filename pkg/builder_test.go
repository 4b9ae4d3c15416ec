package mbevts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const builderInput = `{"kind":"ebis","time":100}
{"kind":"t1","time":50}
{"kind":"gamma","energy":511,"time":120,"cluster":2,"crystal":1}
{"kind":"particle","energy_p":300.5,"energy_n":298.1,"time_p":130,"time_n":131}
{"kind":"ebis","time":200}
{"kind":"spede","energy":80,"time":210,"segment":3}
{"kind":"flush"}
{"kind":"flush"}
{"kind":"beamdump","energy":1,"time":300,"detector":1}
`

func collectWindows(t *testing.T, input string, reset bool) []*MiniballEvts {
	t.Helper()
	b := NewWindowBuilder(16, reset)
	require.NoError(t, b.Run(context.Background(), NewStreamReader(strings.NewReader(input))))

	windows := make([]*MiniballEvts, 0)
	for w := range b.Windows() {
		windows = append(windows, w)
	}
	assert.Equal(t, len(windows), b.Closed())
	return windows
}

func TestWindowBuilderKeepsTimestamps(t *testing.T) {
	windows := collectWindows(t, builderInput, false)
	require.Len(t, windows, 3)

	first := windows[0]
	assert.Equal(t, uint64(100), first.GetEBIS())
	assert.Equal(t, uint64(50), first.GetT1())
	assert.Equal(t, 1, first.GetGammaRayMultiplicity())
	assert.Equal(t, 1, first.GetParticleMultiplicity())
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, float32(511), first.GetGammaRayEvt(0).GetEnergy())

	second := windows[1]
	assert.Equal(t, uint64(200), second.GetEBIS())
	assert.Equal(t, uint64(50), second.GetT1())
	assert.Equal(t, 1, second.GetSpedeMultiplicity())
	assert.Equal(t, 1, second.Len())

	third := windows[2]
	assert.Equal(t, uint64(200), third.GetEBIS())
	assert.Equal(t, uint64(50), third.GetT1())
	assert.Equal(t, 1, third.GetBeamDumpMultiplicity())
	assert.Equal(t, 1, third.Len())
}

func TestWindowBuilderResetTimestamps(t *testing.T) {
	windows := collectWindows(t, builderInput, true)
	require.Len(t, windows, 3)

	assert.Equal(t, uint64(100), windows[0].GetEBIS())
	assert.Equal(t, uint64(50), windows[0].GetT1())
	assert.Equal(t, uint64(200), windows[1].GetEBIS())
	assert.Equal(t, uint64(0), windows[1].GetT1())
	assert.Equal(t, uint64(0), windows[2].GetEBIS())
	assert.Equal(t, uint64(0), windows[2].GetT1())
}

func TestWindowBuilderSentWindowsAreIndependent(t *testing.T) {
	windows := collectWindows(t, builderInput, false)
	require.Len(t, windows, 3)

	// Later windows must not have overwritten the storage of the first one
	assert.Equal(t, 1, windows[0].GetGammaRayMultiplicity())
	assert.Equal(t, 0, windows[0].GetSpedeMultiplicity())
	assert.Equal(t, 0, windows[0].GetBeamDumpMultiplicity())
}

func TestWindowBuilderEmptyStream(t *testing.T) {
	windows := collectWindows(t, "# nothing\n{\"kind\":\"ebis\",\"time\":1}\n{\"kind\":\"flush\"}\n", false)
	assert.Empty(t, windows)
}

func TestWindowBuilderBadRecord(t *testing.T) {
	input := "{\"kind\":\"ebis\",\"time\":1}\n{\"kind\":\"neutron\",\"energy\":1}\n"
	b := NewWindowBuilder(4, false)
	err := b.Run(context.Background(), NewStreamReader(strings.NewReader(input)))
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "line 2")

	_, open := <-b.Windows()
	assert.False(t, open)
}

func TestWindowBuilderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewWindowBuilder(0, false)
	err := b.Run(ctx, NewStreamReader(strings.NewReader(builderInput)))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, b.Closed())
}

func TestWindowBuilderPush(t *testing.T) {
	ctx := context.Background()
	b := NewWindowBuilder(1, false)

	require.NoError(t, b.Push(ctx, InputRecord{Kind: RecordEBIS, Time: 10}))
	require.NoError(t, b.Push(ctx, InputRecord{Kind: "gamma", Energy: 5}))
	require.NoError(t, b.Push(ctx, InputRecord{Kind: RecordFlush}))

	w := <-b.Windows()
	assert.Equal(t, uint64(10), w.GetEBIS())
	assert.Equal(t, 1, w.GetGammaRayMultiplicity())
	assert.Equal(t, 1, b.Closed())
}
