package main

import (
	"fmt"
	"strconv"

	"cliffordsim"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusEditor
	focusMenu
	focusSelectTarget
)

// measLine is one rendered measurement record.
type measLine struct {
	text     string
	isRandom bool
}

// Model represents the TUI application state.
type Model struct {
	circuit       Circuit
	cursorQubit   int
	cursorStep    int
	viewStartStep int
	width         int
	height        int
	editor        textarea.Model
	focus         focus
	lastText      string
	statusMsg     string
	seed          int64
	logger        *zap.Logger

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for two-qubit gates)
	pendingGate string
	targetQubit int

	// Simulation results up to the cursor step
	stabilizers   []string
	destabilizers []string
	measurements  []measLine
	simErr        error
}

func initialModel(numQubits int, seed int64, logger *zap.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit circuit here..."
	ta.SetWidth(30)
	ta.SetHeight(12)
	ta.ShowLineNumbers = false

	m := Model{
		circuit: Circuit{NumQubits: numQubits},
		editor:  ta,
		focus:   focusCircuit,
		seed:    seed,
		logger:  logger,
	}
	m.syncEditor()
	m.simulate()
	return m
}

// syncEditor refreshes the text panel from the circuit.
func (m *Model) syncEditor() {
	text := m.circuit.ToText()
	m.editor.SetValue(text)
	m.lastText = text
}

// parseEditorInput rebuilds the circuit from the text panel on change.
func (m *Model) parseEditorInput() {
	text := m.editor.Value()
	if text == m.lastText {
		return
	}
	var c Circuit
	if err := c.ParseText(text); err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return
	}
	if c.NumQubits == 0 {
		c.NumQubits = 1
	}
	m.circuit = c
	m.lastText = text
	m.clampCursor()
	m.statusMsg = statusStyle.Render(fmt.Sprintf("circuit updated: %d gates", len(c.Gates)))
	m.simulate()
}

// simulate runs the circuit up to the cursor step and caches the results.
func (m *Model) simulate() {
	ops := m.circuit.Operations(m.cursorStep)
	eng := cliffordsim.NewEngine(ops, m.circuit.NumQubits,
		cliffordsim.WithSeed(m.seed),
		cliffordsim.WithLogger(m.logger),
	)
	if err := eng.Run(); err != nil {
		m.simErr = err
		m.stabilizers = nil
		m.destabilizers = nil
		m.measurements = nil
		return
	}
	m.simErr = nil
	m.stabilizers = eng.Data().StabilizerSet
	m.destabilizers = eng.TableauWithScratch().DestabilizerStrings()

	m.measurements = nil
	ds := eng.Data()
	for _, ts := range ds.TimeSteps {
		for i, id := range ds.MeasurementIDs(ts) {
			rec := ds.Measurements[strconv.Itoa(ts)][id]
			line := fmt.Sprintf("#%d q%d -> %d", i, rec.Qubit, rec.Result)
			m.measurements = append(m.measurements, measLine{text: line, isRandom: rec.IsRandom})
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursorQubit >= m.circuit.NumQubits {
		m.cursorQubit = m.circuit.NumQubits - 1
	}
	if m.cursorQubit < 0 {
		m.cursorQubit = 0
	}
	if m.cursorStep < 0 {
		m.cursorStep = 0
	}
}

// placeGate places a gate at the cursor. targetQ is the target qubit for
// two-qubit gates, -1 otherwise.
func (m *Model) placeGate(gateType string, targetQ int) {
	m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
	if targetQ >= 0 {
		m.circuit.RemoveGateAt(m.cursorStep, targetQ)
		m.circuit.AddGate(gateType, targetQ, m.cursorStep, m.cursorQubit)
	} else {
		m.circuit.AddGate(gateType, m.cursorQubit, m.cursorStep)
	}
	m.syncEditor()
	m.simulate()
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.focus {
		case focusEditor:
			return m.updateEditor(msg)
		case focusMenu:
			return m.updateMenu(msg)
		case focusSelectTarget:
			return m.updateSelectTarget(msg)
		default:
			return m.updateCircuit(msg)
		}
	}
	return m, nil
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case "down":
		if m.cursorQubit < m.circuit.NumQubits-1 {
			m.cursorQubit++
		}
	case "left":
		if m.cursorStep > 0 {
			m.cursorStep--
			m.simulate()
		}
	case "right":
		m.cursorStep++
		m.simulate()
	case "h", "s", "x", "y", "z":
		m.placeGate(map[string]string{
			"h": gateH, "s": gateS, "x": gateX, "y": gateY, "z": gateZ,
		}[msg.String()], -1)
	case "m":
		m.placeGate(gateM, -1)
	case "c":
		m.startTargetSelect(gateCX)
	case "v":
		m.startTargetSelect(gateCZ)
	case "g", "enter":
		m.focus = focusMenu
	case "d", "backspace", "delete":
		m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
		m.syncEditor()
		m.simulate()
	case "+":
		m.circuit.NumQubits++
		m.syncEditor()
		m.simulate()
	case "-":
		if m.circuit.NumQubits > 1 {
			m.circuit.NumQubits--
			m.circuit.Gates = removeGatesOnQubit(m.circuit.Gates, m.circuit.NumQubits)
			m.clampCursor()
			m.syncEditor()
			m.simulate()
		}
	case "tab", "e":
		m.focus = focusEditor
		m.editor.Focus()
	}
	return m, nil
}

func (m *Model) startTargetSelect(gateType string) {
	if m.circuit.NumQubits < 2 {
		m.statusMsg = errorStyle.Render("two-qubit gates need at least 2 qubits")
		return
	}
	m.pendingGate = gateType
	m.targetQubit = (m.cursorQubit + 1) % m.circuit.NumQubits
	m.focus = focusSelectTarget
}

func (m Model) updateSelectTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
		m.pendingGate = ""
	case "up":
		m.targetQubit = (m.targetQubit - 1 + m.circuit.NumQubits) % m.circuit.NumQubits
		if m.targetQubit == m.cursorQubit {
			m.targetQubit = (m.targetQubit - 1 + m.circuit.NumQubits) % m.circuit.NumQubits
		}
	case "down":
		m.targetQubit = (m.targetQubit + 1) % m.circuit.NumQubits
		if m.targetQubit == m.cursorQubit {
			m.targetQubit = (m.targetQubit + 1) % m.circuit.NumQubits
		}
	case "enter":
		m.placeGate(m.pendingGate, m.targetQubit)
		m.focus = focusCircuit
		m.pendingGate = ""
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
	case "left":
		m.menuCat = (m.menuCat - 1 + len(gateMenu)) % len(gateMenu)
		m.menuItem = 0
	case "right":
		m.menuCat = (m.menuCat + 1) % len(gateMenu)
		m.menuItem = 0
	case "up":
		items := len(gateMenu[m.menuCat].items)
		m.menuItem = (m.menuItem - 1 + items) % items
	case "down":
		m.menuItem = (m.menuItem + 1) % len(gateMenu[m.menuCat].items)
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.focus = focusCircuit
		if item.needsTarget {
			m.startTargetSelect(item.gateType)
		} else {
			m.placeGate(item.gateType, -1)
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.parseEditorInput()
		m.editor.Blur()
		m.focus = focusCircuit
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func removeGatesOnQubit(gates []Gate, qubit int) []Gate {
	out := gates[:0]
	for _, g := range gates {
		if !g.gateReferences(qubit) {
			out = append(out, g)
		}
	}
	return out
}
