package main

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"cliffordsim"

	"github.com/pkg/errors"
)

// Clifford gate types placeable on the deck.
const (
	gateH  = "H"
	gateS  = "S"
	gateX  = "X"
	gateY  = "Y"
	gateZ  = "Z"
	gateCX = "CX"
	gateCZ = "CZ"
	gateM  = "M"
)

// Gate is a Clifford gate or measurement placed on the circuit grid.
type Gate struct {
	Type    string
	Target  int
	Control int // -1 for single-qubit gates
	Step    int // position in the circuit timeline
}

// Circuit holds the editable Clifford circuit.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// gateReferences reports whether the gate touches the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// RemoveGateAt removes any gate at the given step and qubit.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.gateReferences(qubit)
	})
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// ordered returns the gates sorted by step, stable within a step.
func (c *Circuit) ordered() []Gate {
	gates := make([]Gate, len(c.Gates))
	copy(gates, c.Gates)
	sort.SliceStable(gates, func(i, j int) bool {
		return gates[i].Step < gates[j].Step
	})
	return gates
}

// Operations translates the circuit into a simulator program, keeping only
// gates up to and including upToStep (-1 for the whole circuit).
func (c *Circuit) Operations(upToStep int) []cliffordsim.Operation {
	var ops []cliffordsim.Operation
	for _, g := range c.ordered() {
		if upToStep >= 0 && g.Step > upToStep {
			continue
		}
		switch g.Type {
		case gateH:
			ops = append(ops, cliffordsim.Hadamard{Q: g.Target})
		case gateS:
			ops = append(ops, cliffordsim.Phase{Q: g.Target})
		case gateX:
			ops = append(ops, cliffordsim.PauliX{Q: g.Target})
		case gateY:
			ops = append(ops, cliffordsim.PauliY{Q: g.Target})
		case gateZ:
			ops = append(ops, cliffordsim.PauliZ{Q: g.Target})
		case gateCX:
			ops = append(ops, cliffordsim.CNOT{Control: g.Control, Target: g.Target})
		case gateCZ:
			ops = append(ops, cliffordsim.CZ{A: g.Control, B: g.Target})
		case gateM:
			ops = append(ops, cliffordsim.Measurement{Q: g.Target})
		}
	}
	return ops
}

// ToText serializes the circuit to the line format the editor panel shows:
// a "qubits N" header, then one lowercase mnemonic per line.
func (c *Circuit) ToText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "qubits %d\n", c.NumQubits)
	for _, g := range c.ordered() {
		switch g.Type {
		case gateCX, gateCZ:
			fmt.Fprintf(&sb, "%s %d %d\n", strings.ToLower(g.Type), g.Control, g.Target)
		default:
			fmt.Fprintf(&sb, "%s %d\n", strings.ToLower(g.Type), g.Target)
		}
	}
	return sb.String()
}

// ParseText rebuilds the circuit from the line format. Each gate is placed
// at the earliest step where all of its qubits are free, so independent
// gates share a column.
func (c *Circuit) ParseText(text string) error {
	c.Gates = nil
	c.MaxSteps = 0
	nextFree := make(map[int]int)

	place := func(gateType string, target, control int) {
		step := nextFree[target]
		if control >= 0 && nextFree[control] > step {
			step = nextFree[control]
		}
		if control >= 0 {
			c.AddGate(gateType, target, step, control)
			nextFree[control] = step + 1
		} else {
			c.AddGate(gateType, target, step)
		}
		nextFree[target] = step + 1
	}

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		mnemonic := strings.ToUpper(fields[0])

		if mnemonic == "QUBITS" {
			if len(fields) != 2 {
				return errors.Errorf("line %d: qubits wants one argument", lineNo+1)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return errors.Errorf("line %d: bad qubit count %q", lineNo+1, fields[1])
			}
			c.NumQubits = n
			continue
		}

		switch mnemonic {
		case gateH, gateS, gateX, gateY, gateZ, gateM:
			if len(fields) != 2 {
				return errors.Errorf("line %d: %s wants one qubit", lineNo+1, fields[0])
			}
			q, err := c.parseQubit(fields[1], lineNo)
			if err != nil {
				return err
			}
			place(mnemonic, q, -1)
		case gateCX, gateCZ:
			if len(fields) != 3 {
				return errors.Errorf("line %d: %s wants two qubits", lineNo+1, fields[0])
			}
			ctrl, err := c.parseQubit(fields[1], lineNo)
			if err != nil {
				return err
			}
			tgt, err := c.parseQubit(fields[2], lineNo)
			if err != nil {
				return err
			}
			if ctrl == tgt {
				return errors.Errorf("line %d: control and target coincide", lineNo+1)
			}
			place(mnemonic, tgt, ctrl)
		default:
			return errors.Errorf("line %d: unknown gate %q", lineNo+1, fields[0])
		}
	}
	return nil
}

func (c *Circuit) parseQubit(s string, lineNo int) (int, error) {
	q, err := strconv.Atoi(s)
	if err != nil || q < 0 {
		return 0, errors.Errorf("line %d: bad qubit index %q", lineNo+1, s)
	}
	if q >= c.NumQubits {
		c.NumQubits = q + 1
	}
	return q, nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	// Vertical connections for two-qubit gates crossing this cell.
	for _, g := range c.Gates {
		if g.Step != step || g.Control < 0 {
			continue
		}
		minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}
