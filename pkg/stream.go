package mbevts

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record kinds that are not events but drive the window boundaries.
const (
	RecordEBIS  = "ebis"
	RecordT1    = "t1"
	RecordFlush = "flush"
)

// InputRecord is one line of the JSON-lines event stream. Only the fields of
// the named kind are meaningful.
type InputRecord struct {
	Kind     string  `json:"kind"`
	Energy   float32 `json:"energy"`
	Time     uint64  `json:"time"`
	Cluster  uint8   `json:"cluster"`
	Crystal  uint8   `json:"crystal"`
	Segment  uint8   `json:"segment"`
	EnergyP  float32 `json:"energy_p"`
	EnergyN  float32 `json:"energy_n"`
	TimeP    uint64  `json:"time_p"`
	TimeN    uint64  `json:"time_n"`
	Detector uint8   `json:"detector"`
	Sector   uint8   `json:"sector"`
	StripP   uint8   `json:"strip_p"`
	StripN   uint8   `json:"strip_n"`
}

// Evt builds the typed record described by r.
func (r InputRecord) Evt() (Evt, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}

	switch kind {
	case GammaRay, GammaRayAddback:
		var g GammaRayEvt
		g.SetEnergy(r.Energy)
		g.SetTime(r.Time)
		g.SetCluster(r.Cluster)
		g.SetCrystal(r.Crystal)
		g.SetSegment(r.Segment)
		if kind == GammaRayAddback {
			return GammaRayAddbackEvt{GammaRayEvt: g}, nil
		}
		return g, nil
	case Particle:
		var p ParticleEvt
		p.SetEnergyP(r.EnergyP)
		p.SetEnergyN(r.EnergyN)
		p.SetTimeP(r.TimeP)
		p.SetTimeN(r.TimeN)
		p.SetDetector(r.Detector)
		p.SetSector(r.Sector)
		p.SetStripP(r.StripP)
		p.SetStripN(r.StripN)
		return p, nil
	case BeamDump:
		var b BeamDumpEvt
		b.SetEnergy(r.Energy)
		b.SetTime(r.Time)
		b.SetDetector(r.Detector)
		return b, nil
	case Spede:
		var s SpedeEvt
		s.SetEnergy(r.Energy)
		s.SetTime(r.Time)
		s.SetSegment(r.Segment)
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
}

type StreamReader struct {
	scanner *bufio.Scanner
	line    int
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next record of the stream, or io.EOF once it is exhausted.
// Blank lines and lines starting with '#' are skipped.
func (s *StreamReader) Next() (InputRecord, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var rec InputRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return InputRecord{}, &ErrInputLine{Line: s.line, Err: err}
		}
		if rec.Kind == "" {
			return InputRecord{}, &ErrInputLine{Line: s.line, Err: fmt.Errorf("missing kind")}
		}
		return rec, nil
	}
	if err := s.scanner.Err(); err != nil {
		return InputRecord{}, &ErrInputLine{Line: s.line, Err: err}
	}
	return InputRecord{}, io.EOF
}

// Line returns the number of the last line read.
func (s *StreamReader) Line() int {
	return s.line
}
