package h5

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	mbevts "github.com/miniball-daq/mbevts_go/pkg"
)

// Row layouts of the HDF5 tables. Every event row starts with the index of
// the window it belongs to, followed by the fields of its kind in the order
// given by mbevts.Fields.

type WindowHDF5 struct {
	window    uint32 `hdf5:"window"`
	ebis      uint64 `hdf5:"ebis"`
	t1        uint64 `hdf5:"t1"`
	nGamma    uint32 `hdf5:"n_gamma"`
	nGammaAb  uint32 `hdf5:"n_gamma_ab"`
	nParticle uint32 `hdf5:"n_particle"`
	nBeamDump uint32 `hdf5:"n_beamdump"`
	nSpede    uint32 `hdf5:"n_spede"`
}

type RunInfoHDF5 struct {
	run_number uint32
}

type GammaRayHDF5 struct {
	window  uint32  `hdf5:"window"`
	energy  float32 `hdf5:"energy"`
	time    uint64  `hdf5:"time"`
	cluster uint8   `hdf5:"cluster"`
	crystal uint8   `hdf5:"crystal"`
	segment uint8   `hdf5:"segment"`
}

type ParticleHDF5 struct {
	window   uint32  `hdf5:"window"`
	energyP  float32 `hdf5:"energy_p"`
	energyN  float32 `hdf5:"energy_n"`
	timeP    uint64  `hdf5:"time_p"`
	timeN    uint64  `hdf5:"time_n"`
	detector uint8   `hdf5:"detector"`
	sector   uint8   `hdf5:"sector"`
	stripP   uint8   `hdf5:"strip_p"`
	stripN   uint8   `hdf5:"strip_n"`
}

type BeamDumpHDF5 struct {
	window   uint32  `hdf5:"window"`
	energy   float32 `hdf5:"energy"`
	time     uint64  `hdf5:"time"`
	detector uint8   `hdf5:"detector"`
}

type SpedeHDF5 struct {
	window  uint32  `hdf5:"window"`
	energy  float32 `hdf5:"energy"`
	time    uint64  `hdf5:"time"`
	segment uint8   `hdf5:"segment"`
}

// rowPrototype returns the zero row used to build the table datatype of kind.
func rowPrototype(kind mbevts.Kind) (interface{}, error) {
	switch kind {
	case mbevts.GammaRay, mbevts.GammaRayAddback:
		return GammaRayHDF5{}, nil
	case mbevts.Particle:
		return ParticleHDF5{}, nil
	case mbevts.BeamDump:
		return BeamDumpHDF5{}, nil
	case mbevts.Spede:
		return SpedeHDF5{}, nil
	}
	return nil, mbevts.ErrUnknownKind
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &mbevts.ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &mbevts.ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, chunkSize int, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	if err := plist.SetChunk([]uint{uint(chunkSize)}); err != nil {
		return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &mbevts.ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first rowsInTable rows of dataset.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowsInTable int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	start := uint(rowsInTable)
	if err := dataset.Resize([]uint{start + length}); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	if err := filespace.SelectHyperslab([]uint{start}, nil, []uint{length}, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(data, dataspace, filespace)
}

// shrinkTable sets the length of dataset back to rows when it is longer.
func shrinkTable(dataset *hdf5.Dataset, rows int) error {
	if dataset == nil {
		return nil
	}
	filespace := dataset.Space()
	if filespace == nil {
		return errors.New("dataset has no dataspace")
	}
	defer filespace.Close()
	dims, _, err := filespace.SimpleExtentDims()
	if err != nil {
		return err
	}
	if len(dims) == 1 && dims[0] <= uint(rows) {
		return nil
	}
	return dataset.Resize([]uint{uint(rows)})
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, rowsInTable int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, rowsInTable)
}

// readTable reads every row of group/name.
func readTable[T any](group *hdf5.Group, name string) ([]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &mbevts.ErrReadTable{TableName: name, Err: err}
	}
	defer dset.Close()

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		return nil, &mbevts.ErrReadTable{TableName: name, Err: err}
	}
	if len(dims) != 1 {
		return nil, &mbevts.ErrReadTable{TableName: name, Err: fmt.Errorf("expected 1 dimension, got %d", len(dims))}
	}

	rows := make([]T, dims[0])
	if len(rows) == 0 {
		return rows, nil
	}
	if err := dset.Read(&rows); err != nil {
		return nil, &mbevts.ErrReadTable{TableName: name, Err: err}
	}
	return rows, nil
}
