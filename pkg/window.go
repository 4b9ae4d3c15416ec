package mbevts

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// MiniballEvts holds every event recorded within one beam-pulse acquisition
// window, one ordered sequence per record kind, plus the EBIS and T1 marks
// shared by the whole window.
//
// A MiniballEvts is not safe for concurrent use. A window is handed to another
// goroutine with Clone, after which the producer may ClearEvt its own copy.
type MiniballEvts struct {
	ebis uint64 // absolute EBIS pulse time
	t1   uint64 // absolute proton pulse time

	gammaEvt    []GammaRayEvt
	gammaAbEvt  []GammaRayAddbackEvt
	particleEvt []ParticleEvt
	bdEvt       []BeamDumpEvt
	spedeEvt    []SpedeEvt
}

func NewMiniballEvts() *MiniballEvts {
	return &MiniballEvts{}
}

func (m *MiniballEvts) AddGammaRayEvt(evt GammaRayEvt) {
	m.gammaEvt = append(m.gammaEvt, evt)
}

func (m *MiniballEvts) AddGammaRayAddbackEvt(evt GammaRayAddbackEvt) {
	m.gammaAbEvt = append(m.gammaAbEvt, evt)
}

func (m *MiniballEvts) AddParticleEvt(evt ParticleEvt) {
	m.particleEvt = append(m.particleEvt, evt)
}

func (m *MiniballEvts) AddBeamDumpEvt(evt BeamDumpEvt) {
	m.bdEvt = append(m.bdEvt, evt)
}

func (m *MiniballEvts) AddSpedeEvt(evt SpedeEvt) {
	m.spedeEvt = append(m.spedeEvt, evt)
}

// AddEvt stores a copy of evt in the sequence matching its type. A nil
// record pointer is rejected and leaves the window unchanged.
func (m *MiniballEvts) AddEvt(evt Evt) error {
	switch e := evt.(type) {
	case GammaRayEvt:
		m.AddGammaRayEvt(e)
	case *GammaRayEvt:
		if e == nil {
			return nilEvtError(evt)
		}
		m.AddGammaRayEvt(*e)
	case GammaRayAddbackEvt:
		m.AddGammaRayAddbackEvt(e)
	case *GammaRayAddbackEvt:
		if e == nil {
			return nilEvtError(evt)
		}
		m.AddGammaRayAddbackEvt(*e)
	case ParticleEvt:
		m.AddParticleEvt(e)
	case *ParticleEvt:
		if e == nil {
			return nilEvtError(evt)
		}
		m.AddParticleEvt(*e)
	case BeamDumpEvt:
		m.AddBeamDumpEvt(e)
	case *BeamDumpEvt:
		if e == nil {
			return nilEvtError(evt)
		}
		m.AddBeamDumpEvt(*e)
	case SpedeEvt:
		m.AddSpedeEvt(e)
	case *SpedeEvt:
		if e == nil {
			return nilEvtError(evt)
		}
		m.AddSpedeEvt(*e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, evt)
	}
	return nil
}

func nilEvtError(evt Evt) error {
	return fmt.Errorf("%w: nil %T", ErrUnknownKind, evt)
}

func (m *MiniballEvts) GetGammaRayMultiplicity() int        { return len(m.gammaEvt) }
func (m *MiniballEvts) GetGammaRayAddbackMultiplicity() int { return len(m.gammaAbEvt) }
func (m *MiniballEvts) GetParticleMultiplicity() int        { return len(m.particleEvt) }
func (m *MiniballEvts) GetBeamDumpMultiplicity() int        { return len(m.bdEvt) }
func (m *MiniballEvts) GetSpedeMultiplicity() int           { return len(m.spedeEvt) }

// Multiplicity returns the number of stored records of the given kind, 0 for an unknown kind.
func (m *MiniballEvts) Multiplicity(kind Kind) int {
	switch kind {
	case GammaRay:
		return m.GetGammaRayMultiplicity()
	case GammaRayAddback:
		return m.GetGammaRayAddbackMultiplicity()
	case Particle:
		return m.GetParticleMultiplicity()
	case BeamDump:
		return m.GetBeamDumpMultiplicity()
	case Spede:
		return m.GetSpedeMultiplicity()
	}
	return 0
}

// Len returns the number of records across all kinds.
func (m *MiniballEvts) Len() int {
	return len(m.gammaEvt) + len(m.gammaAbEvt) + len(m.particleEvt) + len(m.bdEvt) + len(m.spedeEvt)
}

func (m *MiniballEvts) Empty() bool {
	return m.Len() == 0
}

// at returns a copy of s[i], or nil when i is out of range.
func at[T any](s []T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	evt := s[i]
	return &evt
}

// GetGammaRayEvt returns a copy of the i-th gamma-ray event, or nil if there is none.
func (m *MiniballEvts) GetGammaRayEvt(i int) *GammaRayEvt {
	return at(m.gammaEvt, i)
}

func (m *MiniballEvts) GetGammaRayAddbackEvt(i int) *GammaRayAddbackEvt {
	return at(m.gammaAbEvt, i)
}

func (m *MiniballEvts) GetParticleEvt(i int) *ParticleEvt {
	return at(m.particleEvt, i)
}

func (m *MiniballEvts) GetBeamDumpEvt(i int) *BeamDumpEvt {
	return at(m.bdEvt, i)
}

func (m *MiniballEvts) GetSpedeEvt(i int) *SpedeEvt {
	return at(m.spedeEvt, i)
}

// The slice accessors return copies in insertion order.
func (m *MiniballEvts) GammaRayEvts() []GammaRayEvt               { return slices.Clone(m.gammaEvt) }
func (m *MiniballEvts) GammaRayAddbackEvts() []GammaRayAddbackEvt { return slices.Clone(m.gammaAbEvt) }
func (m *MiniballEvts) ParticleEvts() []ParticleEvt               { return slices.Clone(m.particleEvt) }
func (m *MiniballEvts) BeamDumpEvts() []BeamDumpEvt               { return slices.Clone(m.bdEvt) }
func (m *MiniballEvts) SpedeEvts() []SpedeEvt                     { return slices.Clone(m.spedeEvt) }

// ClearEvt empties the five event sequences. EBIS and T1 keep their values.
func (m *MiniballEvts) ClearEvt() {
	m.gammaEvt = m.gammaEvt[:0]
	m.gammaAbEvt = m.gammaAbEvt[:0]
	m.particleEvt = m.particleEvt[:0]
	m.bdEvt = m.bdEvt[:0]
	m.spedeEvt = m.spedeEvt[:0]
}

// Reset empties the window and zeroes EBIS and T1.
func (m *MiniballEvts) Reset() {
	m.ClearEvt()
	m.ebis = 0
	m.t1 = 0
}

// Clone returns a deep copy sharing no storage with m.
func (m *MiniballEvts) Clone() *MiniballEvts {
	return &MiniballEvts{
		ebis:        m.ebis,
		t1:          m.t1,
		gammaEvt:    slices.Clone(m.gammaEvt),
		gammaAbEvt:  slices.Clone(m.gammaAbEvt),
		particleEvt: slices.Clone(m.particleEvt),
		bdEvt:       slices.Clone(m.bdEvt),
		spedeEvt:    slices.Clone(m.spedeEvt),
	}
}

func (m *MiniballEvts) SetEBIS(t uint64) { m.ebis = t }
func (m *MiniballEvts) SetT1(t uint64)   { m.t1 = t }
func (m *MiniballEvts) GetEBIS() uint64  { return m.ebis }
func (m *MiniballEvts) GetT1() uint64    { return m.t1 }
