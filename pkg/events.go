package mbevts

// Evt is implemented by every record that can be stored in a MiniballEvts window.
type Evt interface {
	Kind() Kind
	GetEnergy() float32
	GetTime() uint64
}

// GammaRayEvt is a single germanium hit.
type GammaRayEvt struct {
	energy float32 `hdf5:"energy" unit:"keV"`
	time   uint64  `hdf5:"time" unit:"ticks"`
	clu    uint8   `hdf5:"cluster" unit:"id"`
	cry    uint8   `hdf5:"crystal" unit:"id"`
	seg    uint8   `hdf5:"segment" unit:"id"`
}

func (g *GammaRayEvt) SetEnergy(e float32) { g.energy = e }
func (g *GammaRayEvt) SetTime(t uint64)    { g.time = t }
func (g *GammaRayEvt) SetCluster(c uint8)  { g.clu = c }
func (g *GammaRayEvt) SetCrystal(c uint8)  { g.cry = c }
func (g *GammaRayEvt) SetSegment(s uint8)  { g.seg = s }

func (g GammaRayEvt) GetEnergy() float32 { return g.energy }
func (g GammaRayEvt) GetTime() uint64    { return g.time }
func (g GammaRayEvt) GetCluster() uint8  { return g.clu }
func (g GammaRayEvt) GetCrystal() uint8  { return g.cry }
func (g GammaRayEvt) GetSegment() uint8  { return g.seg }

func (GammaRayEvt) Kind() Kind { return GammaRay }

// GammaRayAddbackEvt carries the same fields as GammaRayEvt, but holds the
// energy summed over the crystals of a cluster. It is kept as its own type so
// that it can never be stored as a raw hit.
type GammaRayAddbackEvt struct {
	GammaRayEvt
}

func (GammaRayAddbackEvt) Kind() Kind { return GammaRayAddback }

// ParticleEvt is a coincident p-side/n-side hit in the double-sided strip detector.
type ParticleEvt struct {
	penergy float32 `hdf5:"energy_p" unit:"keV"`
	nenergy float32 `hdf5:"energy_n" unit:"keV"`
	ptime   uint64  `hdf5:"time_p" unit:"ticks"`
	ntime   uint64  `hdf5:"time_n" unit:"ticks"`
	det     uint8   `hdf5:"detector" unit:"id"` // 0 for the forward CD
	sec     uint8   `hdf5:"sector" unit:"id"`   // 0-3 for quadrants
	pstrip  uint8   `hdf5:"strip_p" unit:"id"`
	nstrip  uint8   `hdf5:"strip_n" unit:"id"`
}

func (p *ParticleEvt) SetEnergyP(e float32) { p.penergy = e }
func (p *ParticleEvt) SetEnergyN(e float32) { p.nenergy = e }
func (p *ParticleEvt) SetTimeP(t uint64)    { p.ptime = t }
func (p *ParticleEvt) SetTimeN(t uint64)    { p.ntime = t }
func (p *ParticleEvt) SetDetector(d uint8)  { p.det = d }
func (p *ParticleEvt) SetSector(s uint8)    { p.sec = s }
func (p *ParticleEvt) SetStripP(s uint8)    { p.pstrip = s }
func (p *ParticleEvt) SetStripN(s uint8)    { p.nstrip = s }

// GetEnergy returns the p-side energy.
func (p ParticleEvt) GetEnergy() float32 { return p.GetEnergyP() }

// GetTime returns the p-side timestamp.
func (p ParticleEvt) GetTime() uint64 { return p.GetTimeP() }

func (p ParticleEvt) GetEnergyP() float32 { return p.penergy }
func (p ParticleEvt) GetEnergyN() float32 { return p.nenergy }
func (p ParticleEvt) GetTimeP() uint64    { return p.ptime }
func (p ParticleEvt) GetTimeN() uint64    { return p.ntime }
func (p ParticleEvt) GetDetector() uint8  { return p.det }
func (p ParticleEvt) GetSector() uint8    { return p.sec }
func (p ParticleEvt) GetStripP() uint8    { return p.pstrip }
func (p ParticleEvt) GetStripN() uint8    { return p.nstrip }

func (ParticleEvt) Kind() Kind { return Particle }

// BeamDumpEvt is a hit in one of the beam-dump detectors.
type BeamDumpEvt struct {
	energy float32 `hdf5:"energy" unit:"keV"`
	time   uint64  `hdf5:"time" unit:"ticks"`
	det    uint8   `hdf5:"detector" unit:"id"`
}

func (b *BeamDumpEvt) SetEnergy(e float32) { b.energy = e }
func (b *BeamDumpEvt) SetTime(t uint64)    { b.time = t }
func (b *BeamDumpEvt) SetDetector(d uint8) { b.det = d }

func (b BeamDumpEvt) GetEnergy() float32 { return b.energy }
func (b BeamDumpEvt) GetTime() uint64    { return b.time }
func (b BeamDumpEvt) GetDetector() uint8 { return b.det }

func (BeamDumpEvt) Kind() Kind { return BeamDump }

// SpedeEvt is a conversion-electron hit in SPEDE.
type SpedeEvt struct {
	energy float32 `hdf5:"energy" unit:"keV"`
	time   uint64  `hdf5:"time" unit:"ticks"`
	seg    uint8   `hdf5:"segment" unit:"id"`
}

func (s *SpedeEvt) SetEnergy(e float32)  { s.energy = e }
func (s *SpedeEvt) SetTime(t uint64)     { s.time = t }
func (s *SpedeEvt) SetSegment(seg uint8) { s.seg = seg }

func (s SpedeEvt) GetEnergy() float32 { return s.energy }
func (s SpedeEvt) GetTime() uint64    { return s.time }
func (s SpedeEvt) GetSegment() uint8  { return s.seg }

func (SpedeEvt) Kind() Kind { return Spede }
