package mbevts

import (
	"reflect"
	"sync"
)

// FieldSpec describes one stored field of a record kind.
type FieldSpec struct {
	Name string
	Type reflect.Kind
	Unit string
}

var (
	schemaMu    sync.Mutex
	schemaCache = make(map[Kind][]FieldSpec)
)

// Prototype returns the zero value of the record type stored for kind.
func Prototype(kind Kind) (Evt, error) {
	switch kind {
	case GammaRay:
		return GammaRayEvt{}, nil
	case GammaRayAddback:
		return GammaRayAddbackEvt{}, nil
	case Particle:
		return ParticleEvt{}, nil
	case BeamDump:
		return BeamDumpEvt{}, nil
	case Spede:
		return SpedeEvt{}, nil
	}
	return nil, ErrUnknownKind
}

// Fields returns the ordered field list of kind, read from the hdf5 struct
// tags of its record type. The order is the declaration order and is stable.
func Fields(kind Kind) ([]FieldSpec, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if fields, ok := schemaCache[kind]; ok {
		return append([]FieldSpec(nil), fields...), nil
	}
	proto, err := Prototype(kind)
	if err != nil {
		return nil, err
	}
	fields := collectFields(reflect.TypeOf(proto), nil)
	schemaCache[kind] = fields
	return append([]FieldSpec(nil), fields...), nil
}

func collectFields(t reflect.Type, fields []FieldSpec) []FieldSpec {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// Addback events carry the gamma-ray fields through embedding
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			fields = collectFields(f.Type, fields)
			continue
		}
		name := f.Tag.Get("hdf5")
		if name == "" {
			continue
		}
		fields = append(fields, FieldSpec{
			Name: name,
			Type: f.Type.Kind(),
			Unit: f.Tag.Get("unit"),
		})
	}
	return fields
}
