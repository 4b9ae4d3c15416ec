package mbevts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorDeterministic(t *testing.T) {
	a := NewSimulator(11)
	b := NewSimulator(11)

	for i := 0; i < 10; i++ {
		wa, wb := a.Window(), b.Window()
		require.Equal(t, wa.GetEBIS(), wb.GetEBIS())
		require.Equal(t, wa.GammaRayEvts(), wb.GammaRayEvts())
		require.Equal(t, wa.ParticleEvts(), wb.ParticleEvts())
		require.Equal(t, wa.SpedeEvts(), wb.SpedeEvts())
	}
}

func TestSimulatorRanges(t *testing.T) {
	sim := NewSimulator(3)
	sim.MaxMultiplicity = 6

	for i := 0; i < 50; i++ {
		w := sim.Window()
		ebis := w.GetEBIS()
		assert.Equal(t, uint64(i)*sim.Period, ebis)
		if i%sim.T1Every == 0 {
			assert.Equal(t, ebis, w.GetT1())
		}
		for _, kind := range Kinds() {
			assert.LessOrEqual(t, w.Multiplicity(kind), sim.MaxMultiplicity)
		}

		for _, g := range w.GammaRayEvts() {
			assert.LessOrEqual(t, g.GetCluster(), uint8(7))
			assert.LessOrEqual(t, g.GetCrystal(), uint8(2))
			assert.LessOrEqual(t, g.GetSegment(), uint8(6))
			assert.GreaterOrEqual(t, g.GetTime(), ebis)
			assert.Less(t, g.GetTime(), ebis+sim.Period)
		}
		for _, p := range w.ParticleEvts() {
			assert.LessOrEqual(t, p.GetSector(), uint8(3))
			assert.LessOrEqual(t, p.GetStripP(), uint8(15))
			assert.LessOrEqual(t, p.GetStripN(), uint8(11))
			assert.GreaterOrEqual(t, p.GetTimeN(), p.GetTimeP())
		}
		for _, s := range w.SpedeEvts() {
			assert.LessOrEqual(t, s.GetSegment(), uint8(23))
		}
		for _, b := range w.BeamDumpEvts() {
			assert.LessOrEqual(t, b.GetDetector(), uint8(1))
		}
	}
}

func TestSimulatorNoEvents(t *testing.T) {
	sim := NewSimulator(1)
	sim.MaxMultiplicity = 0
	w := sim.Window()
	assert.True(t, w.Empty())
	assert.Equal(t, uint64(0), w.GetEBIS())
}
