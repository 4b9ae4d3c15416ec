package mbevts

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Simulator produces synthetic windows with plausible Miniball ranges. It is
// meant for exercising writers and readers, not for physics.
type Simulator struct {
	faker           *gofakeit.Faker
	clock           uint64
	MaxMultiplicity int    // upper bound on events per kind and window
	Period          uint64 // ticks between consecutive EBIS pulses
	T1Every         int    // a proton pulse is marked every T1Every windows
	windows         int
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		faker:           gofakeit.New(seed),
		MaxMultiplicity: 8,
		Period:          100000000,
		T1Every:         10,
	}
}

func (s *Simulator) Window() *MiniballEvts {
	evts := NewMiniballEvts()
	evts.SetEBIS(s.clock)
	if s.T1Every > 0 && s.windows%s.T1Every == 0 {
		evts.SetT1(s.clock)
	}

	for i := s.multiplicity(); i > 0; i-- {
		evts.AddGammaRayEvt(s.gamma())
	}
	for i := s.multiplicity(); i > 0; i-- {
		evts.AddGammaRayAddbackEvt(GammaRayAddbackEvt{GammaRayEvt: s.gamma()})
	}
	for i := s.multiplicity(); i > 0; i-- {
		var p ParticleEvt
		p.SetEnergyP(s.faker.Float32Range(1000, 600000))
		p.SetEnergyN(p.GetEnergyP() * s.faker.Float32Range(0.97, 1.03))
		p.SetTimeP(s.tick())
		p.SetTimeN(p.GetTimeP() + uint64(s.faker.IntRange(0, 50)))
		p.SetDetector(0)
		p.SetSector(uint8(s.faker.IntRange(0, 3)))
		p.SetStripP(uint8(s.faker.IntRange(0, 15)))
		p.SetStripN(uint8(s.faker.IntRange(0, 11)))
		evts.AddParticleEvt(p)
	}
	for i := s.multiplicity() / 4; i > 0; i-- {
		var b BeamDumpEvt
		b.SetEnergy(s.faker.Float32Range(20, 3000))
		b.SetTime(s.tick())
		b.SetDetector(uint8(s.faker.IntRange(0, 1)))
		evts.AddBeamDumpEvt(b)
	}
	for i := s.multiplicity() / 2; i > 0; i-- {
		var sp SpedeEvt
		sp.SetEnergy(s.faker.Float32Range(30, 2000))
		sp.SetTime(s.tick())
		sp.SetSegment(uint8(s.faker.IntRange(0, 23)))
		evts.AddSpedeEvt(sp)
	}

	s.windows++
	s.clock += s.Period
	return evts
}

func (s *Simulator) gamma() GammaRayEvt {
	var g GammaRayEvt
	g.SetEnergy(s.faker.Float32Range(40, 4000))
	g.SetTime(s.tick())
	g.SetCluster(uint8(s.faker.IntRange(0, 7)))
	g.SetCrystal(uint8(s.faker.IntRange(0, 2)))
	g.SetSegment(uint8(s.faker.IntRange(0, 6)))
	return g
}

func (s *Simulator) multiplicity() int {
	if s.MaxMultiplicity <= 0 {
		return 0
	}
	return s.faker.IntRange(0, s.MaxMultiplicity)
}

// tick returns a timestamp inside the current window.
func (s *Simulator) tick() uint64 {
	return s.clock + uint64(s.faker.IntRange(0, int(s.Period/2)))
}
