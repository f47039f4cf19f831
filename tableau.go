package cliffordsim

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Tableau is the binary-symplectic representation of a stabilizer state.
// For n qubits it holds 2n+1 rows: rows [0,n) are destabilizer generators,
// rows [n,2n) are stabilizer generators, and row 2n is scratch space used by
// deterministic measurements. Each row carries an X vector, a Z vector and a
// sign bit R.
type Tableau struct {
	NumQubits int
	// NumStabilizers is the row-split: rows [0,NumStabilizers) are
	// destabilizers, [NumStabilizers,2*NumStabilizers) stabilizers. It is
	// fixed at creation; qubit add/delete changes columns only.
	NumStabilizers int
	X              [][]uint8
	Z              [][]uint8
	R              []uint8
}

// NewTableau returns the tableau of the all-zeros state |0...0>:
// destabilizer i is X_i, stabilizer i is Z_i, all signs positive.
func NewTableau(numQubits int) *Tableau {
	rows := 2*numQubits + 1
	t := &Tableau{
		NumQubits:      numQubits,
		NumStabilizers: numQubits,
		X:              make([][]uint8, rows),
		Z:              make([][]uint8, rows),
		R:              make([]uint8, rows),
	}
	for i := range rows {
		t.X[i] = make([]uint8, numQubits)
		t.Z[i] = make([]uint8, numQubits)
	}
	for i := range numQubits {
		t.X[i][i] = 1
		t.Z[numQubits+i][i] = 1
	}
	return t
}

// NumRows returns the total row count including the scratch row.
func (t *Tableau) NumRows() int {
	return len(t.X)
}

// Clone returns a deep copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	c := &Tableau{
		NumQubits:      t.NumQubits,
		NumStabilizers: t.NumStabilizers,
		X:              make([][]uint8, len(t.X)),
		Z:              make([][]uint8, len(t.Z)),
		R:              make([]uint8, len(t.R)),
	}
	copy(c.R, t.R)
	for i := range t.X {
		c.X[i] = make([]uint8, len(t.X[i]))
		c.Z[i] = make([]uint8, len(t.Z[i]))
		copy(c.X[i], t.X[i])
		copy(c.Z[i], t.Z[i])
	}
	return c
}

// SetFrom replaces the tableau's contents in place with those of other.
// The caller is responsible for other encoding a valid generator set;
// validity is never re-checked per gate.
func (t *Tableau) SetFrom(other *Tableau) {
	c := other.Clone()
	t.NumQubits = c.NumQubits
	t.NumStabilizers = c.NumStabilizers
	t.X = c.X
	t.Z = c.Z
	t.R = c.R
}

// ApplyHadamard applies H on qubit q: r ^= x&z, then x and z swap.
func (t *Tableau) ApplyHadamard(q int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][q] & t.Z[i][q]
		t.X[i][q], t.Z[i][q] = t.Z[i][q], t.X[i][q]
	}
}

// ApplyPhase applies the S gate on qubit q: r ^= x&z, z ^= x.
func (t *Tableau) ApplyPhase(q int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][q] & t.Z[i][q]
		t.Z[i][q] ^= t.X[i][q]
	}
}

// ApplyX applies Pauli X on qubit q: r ^= z.
func (t *Tableau) ApplyX(q int) {
	for i := range t.X {
		t.R[i] ^= t.Z[i][q]
	}
}

// ApplyY applies Pauli Y on qubit q: r ^= x^z.
func (t *Tableau) ApplyY(q int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][q] ^ t.Z[i][q]
	}
}

// ApplyZ applies Pauli Z on qubit q: r ^= x.
func (t *Tableau) ApplyZ(q int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][q]
	}
}

// ApplyCNOT applies CNOT with the given control and target qubits.
func (t *Tableau) ApplyCNOT(control, target int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][control] & t.Z[i][target] & (t.X[i][target] ^ t.Z[i][control] ^ 1)
		t.X[i][target] ^= t.X[i][control]
		t.Z[i][control] ^= t.Z[i][target]
	}
}

// ApplyCZ applies CZ on qubits a and b.
func (t *Tableau) ApplyCZ(a, b int) {
	for i := range t.X {
		t.R[i] ^= t.X[i][a] & t.X[i][b] & (t.Z[i][b] ^ t.Z[i][a] ^ 1)
		t.Z[i][b] ^= t.X[i][a]
		t.Z[i][a] ^= t.X[i][b]
	}
}

// phaseExponent returns the power of i contributed when the single-qubit
// Pauli (x1,z1) is multiplied on the right by (x2,z2). Values are in
// {-1, 0, 1}.
func phaseExponent(x1, z1, x2, z2 uint8) int {
	switch {
	case x1 == 0 && z1 == 0:
		return 0
	case x1 == 1 && z1 == 1: // Y
		return int(z2) - int(x2)
	case x1 == 1: // X
		return int(z2) * (2*int(x2) - 1)
	default: // Z
		return int(x2) * (1 - 2*int(z2))
	}
}

// rowMult multiplies row h by row i in place, tracking the sign.
func (t *Tableau) rowMult(h, i int) {
	exp := 2*int(t.R[h]) + 2*int(t.R[i])
	for j := range t.X[h] {
		exp += phaseExponent(t.X[i][j], t.Z[i][j], t.X[h][j], t.Z[h][j])
	}
	exp = ((exp % 4) + 4) % 4
	t.R[h] = uint8(exp / 2)
	for j := range t.X[h] {
		t.X[h][j] ^= t.X[i][j]
		t.Z[h][j] ^= t.Z[i][j]
	}
}

// copyRow copies row src into row dst.
func (t *Tableau) copyRow(dst, src int) {
	copy(t.X[dst], t.X[src])
	copy(t.Z[dst], t.Z[src])
	t.R[dst] = t.R[src]
}

// zeroRow clears row i.
func (t *Tableau) zeroRow(i int) {
	for j := range t.X[i] {
		t.X[i][j] = 0
		t.Z[i][j] = 0
	}
	t.R[i] = 0
}

// MeasureZ measures qubit q in the Z basis and collapses the state.
// When the outcome is not fixed by the stabilizer group, the result is drawn
// from rng unless bias forces it; random reports that the collapse branch was
// taken, whether or not rng supplied the bit. When the outcome is fixed but bias disagrees, the
// state is re-initialized to the bias eigenstate (sign flip of every
// generator with Z support on q) and bias is returned.
func (t *Tableau) MeasureZ(q int, rng *rand.Rand, bias *uint8) (result uint8, random bool) {
	n := t.NumStabilizers
	p := -1
	for i := n; i < 2*n; i++ {
		if t.X[i][q] == 1 {
			p = i
			break
		}
	}

	if p >= 0 {
		// Outcome is not determined: collapse onto a fresh ±Z_q generator.
		for i := 0; i < 2*n; i++ {
			if i != p && t.X[i][q] == 1 {
				t.rowMult(i, p)
			}
		}
		t.copyRow(p-n, p)
		t.zeroRow(p)
		t.Z[p][q] = 1
		if bias != nil {
			result = *bias
		} else {
			result = uint8(rng.Intn(2))
		}
		t.R[p] = result
		return result, true
	}

	// Deterministic: accumulate the fixing generator into the scratch row.
	scratch := t.NumRows() - 1
	t.zeroRow(scratch)
	for i := 0; i < n; i++ {
		if t.X[i][q] == 1 {
			t.rowMult(scratch, i+n)
		}
	}
	result = t.R[scratch]
	if bias != nil && *bias != result {
		t.ApplyX(q)
		result = *bias
	}
	return result, false
}

// AddQubitColumn inserts a zero column at index i in every row. The new
// qubit carries no generator support until the caller installs some.
func (t *Tableau) AddQubitColumn(i int) error {
	if i < 0 || i > t.NumQubits {
		return errors.Errorf("add qubit: index %d out of range for %d qubits", i, t.NumQubits)
	}
	for r := range t.X {
		t.X[r] = insertBit(t.X[r], i)
		t.Z[r] = insertBit(t.Z[r], i)
	}
	t.NumQubits++
	return nil
}

// DeleteQubitColumn removes column i from every row. The column must be
// zero everywhere: a qubit still supported by some generator cannot be
// removed without invalidating the group.
func (t *Tableau) DeleteQubitColumn(i int) error {
	if i < 0 || i >= t.NumQubits {
		return errors.Errorf("delete qubit: index %d out of range for %d qubits", i, t.NumQubits)
	}
	for r := range t.X {
		if t.X[r][i] != 0 || t.Z[r][i] != 0 {
			return errors.Errorf("delete qubit: qubit %d still has generator support on row %d", i, r)
		}
	}
	for r := range t.X {
		t.X[r] = removeBit(t.X[r], i)
		t.Z[r] = removeBit(t.Z[r], i)
	}
	t.NumQubits--
	return nil
}

// rowString renders row i as a signed Pauli string, e.g. "+XIZ" or "-YI".
func (t *Tableau) rowString(i int) string {
	var sb strings.Builder
	if t.R[i] == 0 {
		sb.WriteByte('+')
	} else {
		sb.WriteByte('-')
	}
	for j := range t.X[i] {
		sb.WriteByte(pauliChar(t.X[i][j], t.Z[i][j]))
	}
	return sb.String()
}

// StabilizerStrings renders the stabilizer rows as signed Pauli strings.
func (t *Tableau) StabilizerStrings() []string {
	out := make([]string, 0, t.NumStabilizers)
	for i := t.NumStabilizers; i < 2*t.NumStabilizers; i++ {
		out = append(out, t.rowString(i))
	}
	return out
}

// DestabilizerStrings renders the destabilizer rows as signed Pauli strings.
func (t *Tableau) DestabilizerStrings() []string {
	out := make([]string, 0, t.NumStabilizers)
	for i := range t.NumStabilizers {
		out = append(out, t.rowString(i))
	}
	return out
}

func pauliChar(x, z uint8) byte {
	switch {
	case x == 1 && z == 1:
		return 'Y'
	case x == 1:
		return 'X'
	case z == 1:
		return 'Z'
	default:
		return 'I'
	}
}

func insertBit(row []uint8, i int) []uint8 {
	out := make([]uint8, 0, len(row)+1)
	out = append(out, row[:i]...)
	out = append(out, 0)
	out = append(out, row[i:]...)
	return out
}

func removeBit(row []uint8, i int) []uint8 {
	out := make([]uint8, 0, len(row)-1)
	out = append(out, row[:i]...)
	out = append(out, row[i+1:]...)
	return out
}
