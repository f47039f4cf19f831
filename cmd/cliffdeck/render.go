package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// controlSymbol and targetSymbol are the wire symbols of two-qubit gates.
func targetSymbol(gateType string) string {
	if gateType == gateCZ {
		return "●"
	}
	return "⊕"
}

// renderCell returns the one-line wire cell at (step, qubit).
func renderCell(m *Model, step, qubit int) string {
	info := m.circuit.getCellInfo(step, qubit)
	highlighted := m.focus != focusEditor && step == m.cursorStep && qubit == m.cursorQubit
	targetHL := m.focus == focusSelectTarget && step == m.cursorStep && qubit == m.targetQubit

	dashL := (cellW - 3) / 2
	dashR := cellW - 3 - dashL
	wrap := func(sym string, style lipgloss.Style) string {
		return strings.Repeat("─", dashL) + style.Render(sym) + strings.Repeat("─", dashR)
	}

	var body string
	switch {
	case targetHL:
		sym := "⊕"
		if m.pendingGate == gateCZ {
			sym = "●"
		}
		body = strings.Repeat("─", dashL) + targetSelectStyle.Render("["+sym+"]") + strings.Repeat("─", dashR)
	case info.gate != nil && info.isControl:
		body = wrap(padCenter("●", 3), gateStyle)
	case info.gate != nil && info.isTarget:
		body = wrap(padCenter(targetSymbol(info.gate.Type), 3), gateStyle)
	case info.gate != nil:
		body = strings.Repeat("─", dashL) + "┤" + gateStyle.Render(padCenter(info.gate.Type, 1)) + "├" + strings.Repeat("─", dashR)
	case info.passThrough:
		body = wrap(padCenter("┼", 3), gateStyle)
	default:
		body = strings.Repeat("─", cellW)
	}

	if highlighted {
		return cursorBoxStyle.Render("[") + body + cursorBoxStyle.Render("]")
	}
	return " " + body + " "
}

// renderConnector returns the line drawn between qubit wires q and q+1.
func renderConnector(m *Model, startStep, steps, qubit int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelW))
	for s := 0; s < steps; s++ {
		info := m.circuit.getCellInfo(startStep+s, qubit)
		if info.vertBelow {
			half := (cellW + 2) / 2
			sb.WriteString(strings.Repeat(" ", half))
			sb.WriteString("│")
			sb.WriteString(strings.Repeat(" ", cellW+2-half-1))
		} else {
			sb.WriteString(strings.Repeat(" ", cellW+2))
		}
	}
	return sb.String()
}

// visibleSteps returns how many step columns fit the current width.
func (m *Model) visibleSteps() int {
	avail := m.width - labelW - 12
	if avail < cellW+2 {
		return 1
	}
	steps := avail / (cellW + 2)
	if steps < 1 {
		steps = 1
	}
	return steps
}

// renderCircuit renders the circuit grid panel content.
func renderCircuit(m *Model) string {
	steps := m.visibleSteps()
	if m.cursorStep < m.viewStartStep {
		m.viewStartStep = m.cursorStep
	}
	if m.cursorStep >= m.viewStartStep+steps {
		m.viewStartStep = m.cursorStep - steps + 1
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	fmt.Fprintf(&sb, "  step %d", m.cursorStep)
	if m.viewStartStep > 0 {
		sb.WriteString("  ◀")
	}
	sb.WriteString("\n\n")

	for q := 0; q < m.circuit.NumQubits; q++ {
		label := fmt.Sprintf("q[%d] ", q)
		sb.WriteString(padCenter(label, labelW))
		for s := 0; s < steps; s++ {
			sb.WriteString(renderCell(m, m.viewStartStep+s, q))
		}
		sb.WriteString("\n")
		if q < m.circuit.NumQubits-1 {
			sb.WriteString(renderConnector(m, m.viewStartStep, steps, q))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderStabilizers renders the tableau panel: the stabilizer (and
// destabilizer) generators of the state simulated up to the cursor step.
func renderStabilizers(m *Model) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Stabilizers"))
	sb.WriteString("\n")
	if m.simErr != nil {
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
		return sb.String()
	}
	for _, s := range m.stabilizers {
		sb.WriteString(renderPauliString(s))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(menuDimStyle.Render("Destabilizers"))
	sb.WriteString("\n")
	for _, s := range m.destabilizers {
		sb.WriteString(menuDimStyle.Render(s))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderPauliString styles a signed Pauli string like "+XXI".
func renderPauliString(s string) string {
	if s == "" {
		return s
	}
	sign := signPlusStyle
	if s[0] == '-' {
		sign = signMinusStyle
	}
	return sign.Render(s[:1]) + gateStyle.Render(s[1:])
}

// renderMeasurements renders the measurement record panel.
func renderMeasurements(m *Model) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Measurements"))
	sb.WriteString("\n")
	if len(m.measurements) == 0 {
		sb.WriteString(menuDimStyle.Render("(none up to this step)"))
		return sb.String()
	}
	for _, line := range m.measurements {
		sb.WriteString(line.text)
		if line.isRandom {
			sb.WriteString(" " + randomTagStyle.Render("random"))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderControls renders the key help bar.
func renderControls(m *Model) string {
	switch m.focus {
	case focusEditor:
		return "esc apply+back · ctrl+c quit"
	case focusSelectTarget:
		return "↑/↓ pick target · enter place · esc cancel"
	case focusMenu:
		return "←/→ category · ↑/↓ item · enter place · esc cancel"
	default:
		return "←/→/↑/↓ move · h s x y z m place · c CNOT · v CZ · g menu · d delete · +/- qubits · e editor · q quit"
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	left := circuitStyle.Render(renderCircuit(&m))

	var rightTop string
	if m.focus == focusMenu {
		rightTop = editorStyle.Render(renderMenu(m.menuCat, m.menuItem))
	} else {
		rightTop = editorStyle.Render(
			titleStyle.Render("Program") + "\n" + m.editor.View())
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		rightTop,
		stabilizerStyle.Render(renderStabilizers(&m)),
		recordStyle.Render(renderMeasurements(&m)),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	bottom := controlsStyle.Render(renderControls(&m))
	if m.statusMsg != "" {
		bottom = lipgloss.JoinHorizontal(lipgloss.Top, bottom, " "+m.statusMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, bottom)
}
