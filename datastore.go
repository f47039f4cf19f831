package cliffordsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// MeasurementRecord is the bookkeeping for one measurement event.
type MeasurementRecord struct {
	ID       string
	Qubit    int
	Basis    Basis
	Result   uint8
	IsRandom bool
	// FlipResults maps a Pauli frame id to 1 when that frame flips the
	// expected outcome of this measurement, 0 otherwise.
	FlipResults map[string]uint8
}

// FrameRecord is one create/record snapshot pair for a Pauli frame.
type FrameRecord struct {
	Initial  *PauliFrame
	Recorded *PauliFrame
}

// DataStore collects everything a single simulation run produces besides
// the tableau itself. It is created empty per run and never shared across
// runs.
type DataStore struct {
	TimeStep  int
	TimeSteps []int

	// Measurements maps time-step key -> measurement id -> record.
	Measurements map[string]map[string]*MeasurementRecord
	// measurementOrder keeps insertion order per time step so the frame
	// passes can re-associate replayed measurements with their records.
	measurementOrder map[string][]string

	// PFRecords maps direction -> time-step key -> frame id -> record.
	PFRecords map[Direction]map[string]map[string]*FrameRecord

	// StabilizerSet is the final tableau's stabilizer rows as signed Pauli
	// strings, filled in at the end of an engine run.
	StabilizerSet []string
}

// NewDataStore returns an empty store at time step 0.
func NewDataStore() *DataStore {
	return &DataStore{
		Measurements:     make(map[string]map[string]*MeasurementRecord),
		measurementOrder: make(map[string][]string),
		PFRecords: map[Direction]map[string]map[string]*FrameRecord{
			Forward:  make(map[string]map[string]*FrameRecord),
			Backward: make(map[string]map[string]*FrameRecord),
		},
	}
}

// SetTimeStep moves the store to the given time step. Subsequent
// measurement and frame records land under this step's key.
func (d *DataStore) SetTimeStep(step int) {
	d.TimeStep = step
}

// TimeStepKey returns the map key for the current time step.
func (d *DataStore) TimeStepKey() string {
	return strconv.Itoa(d.TimeStep)
}

// markTimeStep appends the current step to TimeSteps if it is new.
func (d *DataStore) markTimeStep() {
	for _, ts := range d.TimeSteps {
		if ts == d.TimeStep {
			return
		}
	}
	d.TimeSteps = append(d.TimeSteps, d.TimeStep)
}

// addMeasurement files a record under the current time step.
func (d *DataStore) addMeasurement(rec *MeasurementRecord) {
	key := d.TimeStepKey()
	if d.Measurements[key] == nil {
		d.Measurements[key] = make(map[string]*MeasurementRecord)
	}
	d.Measurements[key][rec.ID] = rec
	d.measurementOrder[key] = append(d.measurementOrder[key], rec.ID)
	d.markTimeStep()
}

// MeasurementIDs returns the measurement ids recorded at the given time
// step, in insertion order.
func (d *DataStore) MeasurementIDs(step int) []string {
	return d.measurementOrder[strconv.Itoa(step)]
}

// addFrameRecord files a create/record snapshot pair for the given pass.
func (d *DataStore) addFrameRecord(dir Direction, frameID string, rec *FrameRecord) {
	key := d.TimeStepKey()
	if d.PFRecords[dir][key] == nil {
		d.PFRecords[dir][key] = make(map[string]*FrameRecord)
	}
	d.PFRecords[dir][key][frameID] = rec
	d.markTimeStep()
}

// FrameRecordAt returns the record for a frame id at a time step in the
// given direction, or nil.
func (d *DataStore) FrameRecordAt(dir Direction, step int, frameID string) *FrameRecord {
	byStep := d.PFRecords[dir][strconv.Itoa(step)]
	if byStep == nil {
		return nil
	}
	return byStep[frameID]
}

// ClassicalRegister is a named ordered sequence of classical bits, built by
// the surrounding system and consumed read-only here.
type ClassicalRegister struct {
	Name   string
	Index  int
	Size   int
	Labels []string
}

// LookupBit resolves a bit either by position (bitOrder) or by label
// (bitID). Exactly one of the two must be supplied. It returns the
// register index, the bit index within the register, and the bit's label
// (empty when the register carries no labels).
func (r *ClassicalRegister) LookupBit(bitOrder *int, bitID string) (registerIndex, bitIndex int, label string, err error) {
	switch {
	case bitOrder == nil && bitID == "":
		return 0, 0, "", errors.Errorf("register %q: one of bit order or bit id is required", r.Name)
	case bitOrder != nil && bitID != "":
		return 0, 0, "", errors.Errorf("register %q: bit order and bit id are mutually exclusive", r.Name)
	case bitOrder != nil:
		if *bitOrder < 0 || *bitOrder >= r.Size {
			return 0, 0, "", errors.Errorf("register %q: bit order %d out of range for size %d", r.Name, *bitOrder, r.Size)
		}
		if *bitOrder < len(r.Labels) {
			label = r.Labels[*bitOrder]
		}
		return r.Index, *bitOrder, label, nil
	default:
		for i, l := range r.Labels {
			if l == bitID {
				return r.Index, i, l, nil
			}
		}
		return 0, 0, "", errors.Errorf("register %q has no bit labelled %q", r.Name, bitID)
	}
}
