package h5

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	mbevts "github.com/miniball-daq/mbevts_go/pkg"
)

// Writer appends event windows to an HDF5 file:
//
//	/Run/runInfo      run number
//	/Run/windows      one row per window: index, EBIS, T1, multiplicities
//	/Events/<kind>    one table per record kind, rows tagged with their window
type Writer struct {
	File          *hdf5.File
	Filename      string
	RunNumber     uint32
	RunGroup      *hdf5.Group
	EventsGroup   *hdf5.Group
	RunInfoTable  *hdf5.Dataset
	WindowTable   *hdf5.Dataset
	EventTables   map[mbevts.Kind]*hdf5.Dataset
	WindowCounter int
	rowCounters   map[mbevts.Kind]int
	failed        error
}

func NewWriter(filename string, runNumber uint32) (*Writer, error) {
	config := mbevts.GetConfiguration()
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 32768
	}

	writer := &Writer{
		Filename:    filename,
		RunNumber:   runNumber,
		EventTables: make(map[mbevts.Kind]*hdf5.Dataset),
		rowCounters: make(map[mbevts.Kind]int),
	}

	var err error
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	// On failure release whatever was created so far
	fail := func(err error) (*Writer, error) {
		writer.Close()
		return nil, err
	}

	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return fail(err)
	}
	if writer.EventsGroup, err = createGroup(writer.File, "Events"); err != nil {
		return fail(err)
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}, chunkSize, config.CompressionLevel); err != nil {
		return fail(err)
	}
	if writer.WindowTable, err = createTable(writer.RunGroup, "windows", WindowHDF5{}, chunkSize, config.CompressionLevel); err != nil {
		return fail(err)
	}
	for _, kind := range mbevts.Kinds() {
		proto, err := rowPrototype(kind)
		if err != nil {
			return fail(err)
		}
		table, err := createTable(writer.EventsGroup, kind.String(), proto, chunkSize, config.CompressionLevel)
		if err != nil {
			return fail(err)
		}
		writer.EventTables[kind] = table
	}

	if err := writeEntryToTable(writer.RunInfoTable, RunInfoHDF5{run_number: runNumber}, 0); err != nil {
		return fail(fmt.Errorf("error writing run info: %w", err))
	}

	if config.Verbosity > 0 {
		logger := mbevts.CurrentLogger()
		logger.Info(fmt.Sprintf("Created file %s for run %d", filename, runNumber), "h5writer")
	}
	return writer, nil
}

// WriteWindow appends one window. The window is only read. Event rows are
// written before the window row; if any write fails the tables are shrunk back
// to their previous length, so a failed window leaves no rows behind. When
// that rollback itself fails the writer refuses further windows.
func (w *Writer) WriteWindow(evts *mbevts.MiniballEvts) error {
	if w.failed != nil {
		return fmt.Errorf("writer unusable after failed rollback: %w", w.failed)
	}
	if err := w.writeWindow(evts); err != nil {
		if rollbackErr := w.rollback(); rollbackErr != nil {
			w.failed = rollbackErr
			return errors.Join(err, rollbackErr)
		}
		return err
	}
	return nil
}

func (w *Writer) writeWindow(evts *mbevts.MiniballEvts) error {
	index := uint32(w.WindowCounter)
	pending := make(map[mbevts.Kind]int, len(w.rowCounters))

	gammas := make([]GammaRayHDF5, 0, evts.GetGammaRayMultiplicity())
	for _, g := range evts.GammaRayEvts() {
		gammas = append(gammas, gammaRow(index, g))
	}
	if err := appendKindRows(w, mbevts.GammaRay, &gammas, pending); err != nil {
		return err
	}

	addbacks := make([]GammaRayHDF5, 0, evts.GetGammaRayAddbackMultiplicity())
	for _, g := range evts.GammaRayAddbackEvts() {
		addbacks = append(addbacks, gammaRow(index, g.GammaRayEvt))
	}
	if err := appendKindRows(w, mbevts.GammaRayAddback, &addbacks, pending); err != nil {
		return err
	}

	particles := make([]ParticleHDF5, 0, evts.GetParticleMultiplicity())
	for _, p := range evts.ParticleEvts() {
		particles = append(particles, ParticleHDF5{
			window:   index,
			energyP:  p.GetEnergyP(),
			energyN:  p.GetEnergyN(),
			timeP:    p.GetTimeP(),
			timeN:    p.GetTimeN(),
			detector: p.GetDetector(),
			sector:   p.GetSector(),
			stripP:   p.GetStripP(),
			stripN:   p.GetStripN(),
		})
	}
	if err := appendKindRows(w, mbevts.Particle, &particles, pending); err != nil {
		return err
	}

	beamDumps := make([]BeamDumpHDF5, 0, evts.GetBeamDumpMultiplicity())
	for _, b := range evts.BeamDumpEvts() {
		beamDumps = append(beamDumps, BeamDumpHDF5{
			window:   index,
			energy:   b.GetEnergy(),
			time:     b.GetTime(),
			detector: b.GetDetector(),
		})
	}
	if err := appendKindRows(w, mbevts.BeamDump, &beamDumps, pending); err != nil {
		return err
	}

	spedes := make([]SpedeHDF5, 0, evts.GetSpedeMultiplicity())
	for _, s := range evts.SpedeEvts() {
		spedes = append(spedes, SpedeHDF5{
			window:  index,
			energy:  s.GetEnergy(),
			time:    s.GetTime(),
			segment: s.GetSegment(),
		})
	}
	if err := appendKindRows(w, mbevts.Spede, &spedes, pending); err != nil {
		return err
	}

	row := WindowHDF5{
		window:    index,
		ebis:      evts.GetEBIS(),
		t1:        evts.GetT1(),
		nGamma:    uint32(evts.GetGammaRayMultiplicity()),
		nGammaAb:  uint32(evts.GetGammaRayAddbackMultiplicity()),
		nParticle: uint32(evts.GetParticleMultiplicity()),
		nBeamDump: uint32(evts.GetBeamDumpMultiplicity()),
		nSpede:    uint32(evts.GetSpedeMultiplicity()),
	}
	if err := writeEntryToTable(w.WindowTable, row, w.WindowCounter); err != nil {
		return fmt.Errorf("error writing window %d: %w", index, err)
	}

	for kind, n := range pending {
		w.rowCounters[kind] += n
	}
	w.WindowCounter++
	return nil
}

// rollback shrinks every table back to the rows of the windows written so far.
func (w *Writer) rollback() error {
	var errs []error
	for _, kind := range mbevts.Kinds() {
		if err := shrinkTable(w.EventTables[kind], w.rowCounters[kind]); err != nil {
			errs = append(errs, fmt.Errorf("error rolling back %v table: %w", kind, err))
		}
	}
	if err := shrinkTable(w.WindowTable, w.WindowCounter); err != nil {
		errs = append(errs, fmt.Errorf("error rolling back windows table: %w", err))
	}
	return errors.Join(errs...)
}

func gammaRow(window uint32, g mbevts.GammaRayEvt) GammaRayHDF5 {
	return GammaRayHDF5{
		window:  window,
		energy:  g.GetEnergy(),
		time:    g.GetTime(),
		cluster: g.GetCluster(),
		crystal: g.GetCrystal(),
		segment: g.GetSegment(),
	}
}

// appendKindRows writes rows after the committed and pending rows of kind and
// records them as pending.
func appendKindRows[T any](w *Writer, kind mbevts.Kind, rows *[]T, pending map[mbevts.Kind]int) error {
	if err := writeArrayToTable(w.EventTables[kind], rows, w.rowCounters[kind]+pending[kind]); err != nil {
		return fmt.Errorf("error writing %v events of window %d: %w", kind, w.WindowCounter, err)
	}
	pending[kind] += len(*rows)
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	for _, kind := range mbevts.Kinds() {
		if table, ok := w.EventTables[kind]; ok && table != nil {
			if err := table.Close(); err != nil {
				errs = append(errs, fmt.Errorf("error closing %v table: %w", kind, err))
			}
		}
	}
	if w.WindowTable != nil {
		if err := w.WindowTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing windows table: %w", err))
		}
	}
	if w.RunInfoTable != nil {
		if err := w.RunInfoTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
		}
	}
	if w.EventsGroup != nil {
		if err := w.EventsGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing events group: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}
	return errors.Join(errs...)
}
