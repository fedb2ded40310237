// ABOUTME: Weekly availability schedule types and dense/sparse conversion
// ABOUTME: Dense form drives the editor; sparse form is what gets persisted

package schedule

import (
	"encoding/json"
	"fmt"
)

// Days lists the seven day keys in week order. These are the only keys
// allowed in the persisted form.
var Days = []string{
	"lunes",
	"martes",
	"miercoles",
	"jueves",
	"viernes",
	"sabado",
	"domingo",
}

// Block is a single availability window within a day.
// Times are "HH:MM" strings; the codec does not validate them and does not
// require Inicio to precede Fin.
type Block struct {
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}

// DaySchedule is the editing representation of one day.
type DaySchedule struct {
	Active bool    `json:"active"`
	Blocks []Block `json:"blocks"`
}

// Dense is the editing form: every day key present, inactive days carry an
// empty block list.
type Dense map[string]DaySchedule

// Sparse is the storage form: only days with at least one block appear.
// A day present in sparse form always has a non-empty block list.
type Sparse map[string][]Block

// Encode converts the editing form to the storage form. A day is included
// only when it is active and has at least one block; everything else is
// omitted. Blocks are carried over verbatim, order preserved.
//
// A day marked active with zero blocks is dropped, so Decode(Encode(x))
// yields it as inactive. That collapse matches the persisted format, which
// cannot represent "active but empty".
func Encode(dense Dense) Sparse {
	sparse := Sparse{}
	for _, day := range Days {
		ds, ok := dense[day]
		if !ok {
			continue
		}
		if ds.Active && len(ds.Blocks) > 0 {
			blocks := make([]Block, len(ds.Blocks))
			copy(blocks, ds.Blocks)
			sparse[day] = blocks
		}
	}
	return sparse
}

// Decode converts the storage form back to the editing form. Every one of
// the seven days is present in the result; days absent from the sparse form
// come back inactive with an empty block list.
func Decode(sparse Sparse) Dense {
	dense := Dense{}
	for _, day := range Days {
		if blocks, ok := sparse[day]; ok && len(blocks) > 0 {
			copied := make([]Block, len(blocks))
			copy(copied, blocks)
			dense[day] = DaySchedule{Active: true, Blocks: copied}
		} else {
			dense[day] = DaySchedule{Active: false, Blocks: []Block{}}
		}
	}
	return dense
}

// Empty returns a dense schedule with all days inactive. This is the
// starting point for a new agent's availability editor.
func Empty() Dense {
	return Decode(Sparse{})
}

// MarshalSparse renders the storage JSON. Days without availability are
// omitted entirely; an empty schedule marshals as "{}".
func MarshalSparse(sparse Sparse) ([]byte, error) {
	// Strip any empty slices so the persisted object never carries them
	clean := map[string][]Block{}
	for _, day := range Days {
		if blocks, ok := sparse[day]; ok && len(blocks) > 0 {
			clean[day] = blocks
		}
	}
	data, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("marshaling schedule: %w", err)
	}
	return data, nil
}

// UnmarshalSparse parses the storage JSON, rejecting unknown day keys and
// days carrying an empty block list. An empty input is treated as an empty
// schedule.
func UnmarshalSparse(data []byte) (Sparse, error) {
	if len(data) == 0 {
		return Sparse{}, nil
	}

	var raw map[string][]Block
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}

	sparse := Sparse{}
	for key, blocks := range raw {
		if !validDay(key) {
			return nil, fmt.Errorf("parsing schedule: unknown day %q", key)
		}
		if len(blocks) == 0 {
			return nil, fmt.Errorf("parsing schedule: day %q has no blocks", key)
		}
		sparse[key] = blocks
	}
	return sparse, nil
}

func validDay(key string) bool {
	for _, day := range Days {
		if key == day {
			return true
		}
	}
	return false
}
