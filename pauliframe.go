package cliffordsim

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Direction tags a Pauli frame with the traversal pass it belongs to.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// ErrDirection is returned when a direction string is neither "forward"
// nor "backward".
var ErrDirection = errors.New("direction must be \"forward\" or \"backward\"")

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Forward, Backward:
		return Direction(s), nil
	default:
		return "", errors.Wrapf(ErrDirection, "got %q", s)
	}
}

// Basis names a single-qubit measurement basis.
type Basis string

const (
	BasisX Basis = "X"
	BasisY Basis = "Y"
	BasisZ Basis = "Z"
)

// PauliFrame tracks a single Pauli operator through a circuit, independent
// of the full tableau. It carries per-qubit X and Z bits but no sign: frame
// semantics only need which Pauli each qubit holds.
type PauliFrame struct {
	X         []uint8
	Z         []uint8
	ID        string
	Direction Direction
}

// NewPauliFrame returns an all-identity frame on numQubits qubits with a
// freshly generated id.
func NewPauliFrame(numQubits int, direction Direction) *PauliFrame {
	return &PauliFrame{
		X:         make([]uint8, numQubits),
		Z:         make([]uint8, numQubits),
		ID:        uuid.NewString(),
		Direction: direction,
	}
}

// FrameFromString parses a Pauli string such as "XIZY" into a frame.
// Only the characters I, X, Y, Z are accepted.
func FrameFromString(s string, direction Direction) (*PauliFrame, error) {
	f := NewPauliFrame(len(s), direction)
	for i, c := range s {
		switch c {
		case 'I':
		case 'X':
			f.X[i] = 1
		case 'Y':
			f.X[i] = 1
			f.Z[i] = 1
		case 'Z':
			f.Z[i] = 1
		default:
			return nil, errors.Errorf("invalid Pauli character %q at position %d in %q", c, i, s)
		}
	}
	return f, nil
}

// Len returns the number of qubits the frame spans.
func (f *PauliFrame) Len() int {
	return len(f.X)
}

// Clone returns a deep copy sharing the same id and direction.
func (f *PauliFrame) Clone() *PauliFrame {
	c := &PauliFrame{
		X:         make([]uint8, len(f.X)),
		Z:         make([]uint8, len(f.Z)),
		ID:        f.ID,
		Direction: f.Direction,
	}
	copy(c.X, f.X)
	copy(c.Z, f.Z)
	return c
}

// Equal reports whether two frames carry the same Pauli operator. Ids and
// directions do not participate in equality.
func (f *PauliFrame) Equal(other *PauliFrame) bool {
	if other == nil || len(f.X) != len(other.X) {
		return false
	}
	for i := range f.X {
		if f.X[i] != other.X[i] || f.Z[i] != other.Z[i] {
			return false
		}
	}
	return true
}

// String renders the frame as an unsigned Pauli string, e.g. "XIZ".
func (f *PauliFrame) String() string {
	var sb strings.Builder
	for i := range f.X {
		sb.WriteByte(pauliChar(f.X[i], f.Z[i]))
	}
	return sb.String()
}

// Gate propagation: the tableau column rules of the same gates, restricted
// to the (x,z) pair. Pauli gates only touch signs and are no-ops here.

func (f *PauliFrame) applyHadamard(q int) {
	f.X[q], f.Z[q] = f.Z[q], f.X[q]
}

func (f *PauliFrame) applyPhase(q int) {
	f.Z[q] ^= f.X[q]
}

func (f *PauliFrame) applyCNOT(control, target int) {
	f.X[target] ^= f.X[control]
	f.Z[control] ^= f.Z[target]
}

func (f *PauliFrame) applyCZ(a, b int) {
	f.Z[b] ^= f.X[a]
	f.Z[a] ^= f.X[b]
}

func (f *PauliFrame) insertQubit(i int) {
	f.X = insertBit(f.X, i)
	f.Z = insertBit(f.Z, i)
}

func (f *PauliFrame) deleteQubit(i int) {
	f.X = removeBit(f.X, i)
	f.Z = removeBit(f.Z, i)
}

// flipBit reports whether the frame's Pauli at qubit q anticommutes with
// the measurement-basis Pauli there, flipping the expected outcome.
func (f *PauliFrame) flipBit(q int, basis Basis) uint8 {
	switch basis {
	case BasisX:
		return f.Z[q]
	case BasisY:
		return f.X[q] ^ f.Z[q]
	default:
		return f.X[q]
	}
}
