package mbevts

import (
	"encoding/json"
	"fmt"
)

type Kind int

const (
	GammaRay Kind = iota
	GammaRayAddback
	Particle
	BeamDump
	Spede
)

var kindStrings = []string{
	"gamma",
	"gamma_ab",
	"particle",
	"beamdump",
	"spede",
}

// Kinds returns every record kind in storage order.
func Kinds() []Kind {
	return []Kind{GammaRay, GammaRayAddback, Particle, BeamDump, Spede}
}

func (k Kind) String() string {
	if k < GammaRay || k > Spede {
		return "UNKNOWN"
	}
	return kindStrings[k]
}

func ParseKind(s string) (Kind, error) {
	for i, v := range kindStrings {
		if v == s {
			return Kind(i), nil
		}
	}
	return -1, fmt.Errorf("invalid Kind: %s", s)
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
