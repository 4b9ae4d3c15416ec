package h5

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	mbevts "github.com/miniball-daq/mbevts_go/pkg"
)

// ReadFile reads back a file produced by Writer. Windows are returned in the
// order they were written, with their EBIS and T1 marks.
func ReadFile(filename string) (uint32, []*mbevts.MiniballEvts, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return 0, nil, &mbevts.ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	runGroup, err := f.OpenGroup("Run")
	if err != nil {
		return 0, nil, fmt.Errorf("error opening Run group: %w", err)
	}
	defer runGroup.Close()

	eventsGroup, err := f.OpenGroup("Events")
	if err != nil {
		return 0, nil, fmt.Errorf("error opening Events group: %w", err)
	}
	defer eventsGroup.Close()

	runInfo, err := readTable[RunInfoHDF5](runGroup, "runInfo")
	if err != nil {
		return 0, nil, err
	}
	var runNumber uint32
	if len(runInfo) > 0 {
		runNumber = runInfo[0].run_number
	}

	windowRows, err := readTable[WindowHDF5](runGroup, "windows")
	if err != nil {
		return runNumber, nil, err
	}
	windows := make([]*mbevts.MiniballEvts, len(windowRows))
	for i, row := range windowRows {
		if int(row.window) != i {
			return runNumber, nil, fmt.Errorf("window table out of order: row %d holds window %d", i, row.window)
		}
		evts := mbevts.NewMiniballEvts()
		evts.SetEBIS(row.ebis)
		evts.SetT1(row.t1)
		windows[i] = evts
	}

	lookup := func(kind mbevts.Kind, window uint32) (*mbevts.MiniballEvts, error) {
		if int(window) >= len(windows) {
			return nil, &mbevts.ErrReadTable{
				TableName: kind.String(),
				Err:       fmt.Errorf("row refers to window %d, file has %d", window, len(windows)),
			}
		}
		return windows[window], nil
	}

	for _, kind := range []mbevts.Kind{mbevts.GammaRay, mbevts.GammaRayAddback} {
		rows, err := readTable[GammaRayHDF5](eventsGroup, kind.String())
		if err != nil {
			return runNumber, nil, err
		}
		for _, row := range rows {
			evts, err := lookup(kind, row.window)
			if err != nil {
				return runNumber, nil, err
			}
			g := row.evt()
			if kind == mbevts.GammaRayAddback {
				evts.AddGammaRayAddbackEvt(mbevts.GammaRayAddbackEvt{GammaRayEvt: g})
			} else {
				evts.AddGammaRayEvt(g)
			}
		}
	}

	particles, err := readTable[ParticleHDF5](eventsGroup, mbevts.Particle.String())
	if err != nil {
		return runNumber, nil, err
	}
	for _, row := range particles {
		evts, err := lookup(mbevts.Particle, row.window)
		if err != nil {
			return runNumber, nil, err
		}
		var p mbevts.ParticleEvt
		p.SetEnergyP(row.energyP)
		p.SetEnergyN(row.energyN)
		p.SetTimeP(row.timeP)
		p.SetTimeN(row.timeN)
		p.SetDetector(row.detector)
		p.SetSector(row.sector)
		p.SetStripP(row.stripP)
		p.SetStripN(row.stripN)
		evts.AddParticleEvt(p)
	}

	beamDumps, err := readTable[BeamDumpHDF5](eventsGroup, mbevts.BeamDump.String())
	if err != nil {
		return runNumber, nil, err
	}
	for _, row := range beamDumps {
		evts, err := lookup(mbevts.BeamDump, row.window)
		if err != nil {
			return runNumber, nil, err
		}
		var b mbevts.BeamDumpEvt
		b.SetEnergy(row.energy)
		b.SetTime(row.time)
		b.SetDetector(row.detector)
		evts.AddBeamDumpEvt(b)
	}

	spedes, err := readTable[SpedeHDF5](eventsGroup, mbevts.Spede.String())
	if err != nil {
		return runNumber, nil, err
	}
	for _, row := range spedes {
		evts, err := lookup(mbevts.Spede, row.window)
		if err != nil {
			return runNumber, nil, err
		}
		var s mbevts.SpedeEvt
		s.SetEnergy(row.energy)
		s.SetTime(row.time)
		s.SetSegment(row.segment)
		evts.AddSpedeEvt(s)
	}

	if err := checkMultiplicities(windowRows, windows); err != nil {
		return runNumber, nil, err
	}
	return runNumber, windows, nil
}

func (row GammaRayHDF5) evt() mbevts.GammaRayEvt {
	var g mbevts.GammaRayEvt
	g.SetEnergy(row.energy)
	g.SetTime(row.time)
	g.SetCluster(row.cluster)
	g.SetCrystal(row.crystal)
	g.SetSegment(row.segment)
	return g
}

// checkMultiplicities compares the rebuilt windows with the counts stored in the windows table.
func checkMultiplicities(rows []WindowHDF5, windows []*mbevts.MiniballEvts) error {
	var errs []error
	for i, row := range rows {
		evts := windows[i]
		expected := map[mbevts.Kind]uint32{
			mbevts.GammaRay:        row.nGamma,
			mbevts.GammaRayAddback: row.nGammaAb,
			mbevts.Particle:        row.nParticle,
			mbevts.BeamDump:        row.nBeamDump,
			mbevts.Spede:           row.nSpede,
		}
		for _, kind := range mbevts.Kinds() {
			if got := uint32(evts.Multiplicity(kind)); got != expected[kind] {
				errs = append(errs, fmt.Errorf("window %d: %d %v events read, %d expected", i, got, kind, expected[kind]))
			}
		}
	}
	return errors.Join(errs...)
}
