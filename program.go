package cliffordsim

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A program is an ordered []Operation. The first element corresponds to the
// root of an instruction chain and runs first; Apply and the forward frame
// pass traverse it front to back, the backward frame pass back to front.

var (
	// ErrDuplicateFrame is returned when two CreatePauliFrame steps in one
	// direction share a frame id.
	ErrDuplicateFrame = errors.New("pauli frame id already created")
	// ErrUnknownFrame is returned when RecordPauliFrame runs without a
	// prior CreatePauliFrame of the same id in the same direction.
	ErrUnknownFrame = errors.New("no pauli frame created with this id")
)

// rotateToZ conjugates the tableau so that a Z measurement of q realizes a
// measurement in the requested basis.
func rotateToZ(t *Tableau, q int, basis Basis) error {
	switch basis {
	case BasisZ, "":
		return nil
	case BasisX:
		t.ApplyHadamard(q)
		return nil
	case BasisY:
		// S† then H maps Y to Z; S† is three S applications.
		t.ApplyPhase(q)
		t.ApplyPhase(q)
		t.ApplyPhase(q)
		t.ApplyHadamard(q)
		return nil
	default:
		return errors.Errorf("unknown measurement basis %q", basis)
	}
}

// rotateFromZ undoes rotateToZ so the post-measurement tableau is expressed
// in the original frame.
func rotateFromZ(t *Tableau, q int, basis Basis) {
	switch basis {
	case BasisX:
		t.ApplyHadamard(q)
	case BasisY:
		t.ApplyHadamard(q)
		t.ApplyPhase(q)
	}
}

// Apply runs the full tableau semantics of every step in order, writing
// measurement records into ds. Frame create/record steps are no-ops here;
// they belong to the frame passes. The first failing step aborts the run.
func Apply(ops []Operation, tab *Tableau, ds *DataStore, rng *rand.Rand) error {
	for i, op := range ops {
		if err := applyStep(op, tab, ds, rng); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, op.Name())
		}
	}
	return nil
}

func applyStep(op Operation, tab *Tableau, ds *DataStore, rng *rand.Rand) error {
	switch o := op.(type) {
	case Identity:
	case Hadamard:
		tab.ApplyHadamard(o.Q)
	case Phase:
		tab.ApplyPhase(o.Q)
	case PauliX:
		tab.ApplyX(o.Q)
	case PauliY:
		tab.ApplyY(o.Q)
	case PauliZ:
		tab.ApplyZ(o.Q)
	case CNOT:
		tab.ApplyCNOT(o.Control, o.Target)
	case CZ:
		tab.ApplyCZ(o.A, o.B)
	case Measurement:
		basis := o.Basis
		if basis == "" {
			basis = BasisZ
		}
		if err := rotateToZ(tab, o.Q, basis); err != nil {
			return err
		}
		result, random := tab.MeasureZ(o.Q, rng, o.Bias)
		rotateFromZ(tab, o.Q, basis)
		ds.addMeasurement(&MeasurementRecord{
			ID:          uuid.NewString(),
			Qubit:       o.Q,
			Basis:       basis,
			Result:      result,
			IsRandom:    random,
			FlipResults: make(map[string]uint8),
		})
	case UpdateTableau:
		if o.Tableau == nil {
			return errors.New("update tableau: nil replacement")
		}
		// Only add/delete qubit steps change the qubit count; the frame
		// passes rely on that when validating frame lengths.
		if o.Tableau.NumQubits != tab.NumQubits {
			return errors.Errorf("update tableau: replacement spans %d qubits but the running tableau has %d; use add/delete qubit steps to resize",
				o.Tableau.NumQubits, tab.NumQubits)
		}
		tab.SetFrom(o.Tableau)
	case CreatePauliFrame, RecordPauliFrame:
		// Frame protocol steps run only in the frame passes.
	case AddQubit:
		return tab.AddQubitColumn(o.Index)
	case DeleteQubit:
		return tab.DeleteQubitColumn(o.Index)
	case ClassicalBit:
		_, _, _, err := o.Register.LookupBit(o.BitOrder, o.BitID)
		return err
	default:
		return errors.Errorf("unhandled operation %T", op)
	}
	return nil
}

// frameTraversal carries the mutable state of one frame pass.
type frameTraversal struct {
	dir       Direction
	numQubits int
	frames    []*PauliFrame
	created   map[string]*PauliFrame
	ds        *DataStore
	// measIdx tracks, per time-step key, which replayed measurement
	// corresponds to which record from the Apply pass.
	measIdx map[string]int
}

// ApplyFrames propagates Pauli frames of the given direction through the
// program. The forward pass traverses root to tip, the backward pass tip to
// root with the same column formulas. numQubits is the qubit count at the
// root of the program; resize steps shift it as they are crossed. Flip
// results and frame records land in ds, keyed under its current time step.
func ApplyFrames(ops []Operation, numQubits int, ds *DataStore, dir Direction) ([]*PauliFrame, error) {
	if dir != Forward && dir != Backward {
		return nil, errors.Wrapf(ErrDirection, "got %q", dir)
	}
	tr := &frameTraversal{
		dir:       dir,
		numQubits: numQubits,
		created:   make(map[string]*PauliFrame),
		ds:        ds,
		measIdx:   make(map[string]int),
	}
	if dir == Backward {
		// The backward pass starts at the tip, after all resizes.
		for _, op := range ops {
			switch op.(type) {
			case AddQubit:
				tr.numQubits++
			case DeleteQubit:
				tr.numQubits--
			}
		}
		for i := len(ops) - 1; i >= 0; i-- {
			if err := tr.step(ops[i]); err != nil {
				return nil, errors.Wrapf(err, "step %d (%s)", i, ops[i].Name())
			}
		}
		return tr.frames, nil
	}
	for i, op := range ops {
		if err := tr.step(op); err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, op.Name())
		}
	}
	return tr.frames, nil
}

func (tr *frameTraversal) step(op Operation) error {
	switch o := op.(type) {
	case Identity, PauliX, PauliY, PauliZ, UpdateTableau, ClassicalBit:
		// Pauli gates only move signs, which frames do not carry.
	case Hadamard:
		for _, f := range tr.frames {
			f.applyHadamard(o.Q)
		}
	case Phase:
		for _, f := range tr.frames {
			f.applyPhase(o.Q)
		}
	case CNOT:
		for _, f := range tr.frames {
			f.applyCNOT(o.Control, o.Target)
		}
	case CZ:
		for _, f := range tr.frames {
			f.applyCZ(o.A, o.B)
		}
	case Measurement:
		tr.recordFlips(o)
	case CreatePauliFrame:
		return tr.create(o.Frame)
	case RecordPauliFrame:
		return tr.record(o.Frame)
	case AddQubit:
		tr.resize(o.Index, tr.dir == Forward)
	case DeleteQubit:
		tr.resize(o.Index, tr.dir == Backward)
	default:
		return errors.Errorf("unhandled operation %T", op)
	}
	return nil
}

// resize inserts (grow=true) or removes the qubit at index i in every
// tracked frame. The backward pass crosses resize steps in reverse, so an
// AddQubit shrinks it and a DeleteQubit grows it.
func (tr *frameTraversal) resize(i int, grow bool) {
	for _, f := range tr.frames {
		if grow {
			f.insertQubit(i)
		} else {
			f.deleteQubit(i)
		}
	}
	if grow {
		tr.numQubits++
	} else {
		tr.numQubits--
	}
}

// recordFlips attaches each tracked frame's flip bit to the measurement
// record the Apply pass filed for this step. The forward pass meets
// measurements in record order, the backward pass in reverse order.
func (tr *frameTraversal) recordFlips(m Measurement) {
	basis := m.Basis
	if basis == "" {
		basis = BasisZ
	}
	key := tr.ds.TimeStepKey()
	order := tr.ds.measurementOrder[key]
	idx := tr.measIdx[key]
	if tr.dir == Backward {
		idx = len(order) - 1 - tr.measIdx[key]
	}
	tr.measIdx[key]++
	if idx < 0 || idx >= len(order) {
		// No matching record: a frame-only traversal with no prior Apply.
		return
	}
	rec := tr.ds.Measurements[key][order[idx]]
	for _, f := range tr.frames {
		rec.FlipResults[f.ID] = f.flipBit(m.Q, basis)
	}
}

func (tr *frameTraversal) create(frame *PauliFrame) error {
	if frame == nil {
		return errors.New("create: nil pauli frame")
	}
	if frame.Direction != tr.dir {
		return nil
	}
	if _, ok := tr.created[frame.ID]; ok {
		return errors.Wrapf(ErrDuplicateFrame, "%q in %s direction", frame.ID, tr.dir)
	}
	if frame.Len() != tr.numQubits {
		return errors.Errorf(
			"pauli frame %q spans %d qubits but %d are required here; add/delete qubit steps change the required size",
			frame.ID, frame.Len(), tr.numQubits)
	}
	tr.created[frame.ID] = frame.Clone()
	tr.frames = append(tr.frames, frame.Clone())
	return nil
}

func (tr *frameTraversal) record(frame *PauliFrame) error {
	if frame == nil {
		return errors.New("record: nil pauli frame")
	}
	if frame.Direction != tr.dir {
		return nil
	}
	initial, ok := tr.created[frame.ID]
	if !ok {
		return errors.Wrapf(ErrUnknownFrame, "%q in %s direction", frame.ID, tr.dir)
	}
	for _, f := range tr.frames {
		if f.ID == frame.ID {
			tr.ds.addFrameRecord(tr.dir, frame.ID, &FrameRecord{
				Initial:  initial.Clone(),
				Recorded: f.Clone(),
			})
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownFrame, "%q in %s direction", frame.ID, tr.dir)
}

// hasFrameOps reports whether any step of the program touches the frame
// protocol.
func hasFrameOps(ops []Operation) bool {
	for _, op := range ops {
		switch op.(type) {
		case CreatePauliFrame, RecordPauliFrame:
			return true
		}
	}
	return false
}
