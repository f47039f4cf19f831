package cliffordsim

// Operation is one gate or protocol action in a program. Each variant
// carries only the parameters its update rule needs; construction and
// argument validation live with the caller.
type Operation interface {
	// Name returns a short display name for logs and UIs.
	Name() string
	isOperation()
}

// Identity is the no-op root of every program.
type Identity struct{}

// Hadamard applies H to qubit Q.
type Hadamard struct {
	Q int
}

// Phase applies the S gate to qubit Q.
type Phase struct {
	Q int
}

// PauliX applies X to qubit Q.
type PauliX struct {
	Q int
}

// PauliY applies Y to qubit Q.
type PauliY struct {
	Q int
}

// PauliZ applies Z to qubit Q.
type PauliZ struct {
	Q int
}

// CNOT applies a controlled-X from Control to Target.
type CNOT struct {
	Control int
	Target  int
}

// CZ applies a controlled-Z between qubits A and B.
type CZ struct {
	A int
	B int
}

// Measurement measures qubit Q in the given basis (Z when empty). A non-nil
// Bias forces the reported outcome; see Tableau.MeasureZ for the exact
// semantics.
type Measurement struct {
	Q     int
	Basis Basis
	Bias  *uint8
}

// Bias is a convenience for building Measurement literals.
func Bias(b uint8) *uint8 {
	return &b
}

// UpdateTableau replaces the running tableau's contents wholesale. The
// caller is responsible for the replacement encoding a valid generator set.
// The replacement must span the same number of qubits as the running
// tableau; only AddQubit and DeleteQubit change the qubit count.
type UpdateTableau struct {
	Tableau *Tableau
}

// CreatePauliFrame inserts Frame into the tracked list of the pass whose
// direction matches; the other pass ignores it.
type CreatePauliFrame struct {
	Frame *PauliFrame
}

// RecordPauliFrame snapshots the current propagated value of a previously
// created frame into the data store.
type RecordPauliFrame struct {
	Frame *PauliFrame
}

// AddQubit inserts a new qubit at Index in the tableau and every tracked
// frame.
type AddQubit struct {
	Index int
}

// DeleteQubit removes the qubit at Index from the tableau and every tracked
// frame. The tableau column must be free of generator support.
type DeleteQubit struct {
	Index int
}

// ClassicalBit resolves a bit of a classical register, by position or by
// label. It has no simulator side effects.
type ClassicalBit struct {
	Register *ClassicalRegister
	BitOrder *int
	BitID    string
}

// BitOrder is a convenience for building ClassicalBit literals.
func BitOrder(i int) *int {
	return &i
}

func (Identity) Name() string         { return "I" }
func (Hadamard) Name() string         { return "H" }
func (Phase) Name() string            { return "S" }
func (PauliX) Name() string           { return "X" }
func (PauliY) Name() string           { return "Y" }
func (PauliZ) Name() string           { return "Z" }
func (CNOT) Name() string             { return "CX" }
func (CZ) Name() string               { return "CZ" }
func (Measurement) Name() string      { return "M" }
func (UpdateTableau) Name() string    { return "UPDATE" }
func (CreatePauliFrame) Name() string { return "PF_CREATE" }
func (RecordPauliFrame) Name() string { return "PF_RECORD" }
func (AddQubit) Name() string         { return "ADD_QUBIT" }
func (DeleteQubit) Name() string      { return "DELETE_QUBIT" }
func (ClassicalBit) Name() string     { return "CBIT" }

func (Identity) isOperation()         {}
func (Hadamard) isOperation()         {}
func (Phase) isOperation()            {}
func (PauliX) isOperation()           {}
func (PauliY) isOperation()           {}
func (PauliZ) isOperation()           {}
func (CNOT) isOperation()             {}
func (CZ) isOperation()               {}
func (Measurement) isOperation()      {}
func (UpdateTableau) isOperation()    {}
func (CreatePauliFrame) isOperation() {}
func (RecordPauliFrame) isOperation() {}
func (AddQubit) isOperation()         {}
func (DeleteQubit) isOperation()      {}
func (ClassicalBit) isOperation()     {}
