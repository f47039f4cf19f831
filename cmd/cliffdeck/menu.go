package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateType    string
	symbol      string
	needsTarget bool
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gateType: gateH, symbol: "H"},
			{name: "Phase (S)", gateType: gateS, symbol: "S"},
			{name: "Pauli-X", gateType: gateX, symbol: "X"},
			{name: "Pauli-Y", gateType: gateY, symbol: "Y"},
			{name: "Pauli-Z", gateType: gateZ, symbol: "Z"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", gateType: gateCX, symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Z", gateType: gateCZ, symbol: "●─●", needsTarget: true},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure Z", gateType: gateM, symbol: "M"},
		},
	},
}

// renderMenu renders the gate picker with the given category/item selected.
func renderMenu(catIdx, itemIdx int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Place gate"))
	sb.WriteString("\n\n")

	tabs := make([]string, len(gateMenu))
	for i, cat := range gateMenu {
		if i == catIdx {
			tabs[i] = menuSelStyle.Render("[" + cat.name + "]")
		} else {
			tabs[i] = menuDimStyle.Render(" " + cat.name + " ")
		}
	}
	sb.WriteString(strings.Join(tabs, " "))
	sb.WriteString("\n\n")

	for i, item := range gateMenu[catIdx].items {
		line := fmt.Sprintf("%-14s %s", item.name, item.symbol)
		if i == itemIdx {
			sb.WriteString(menuSelStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(menuDimStyle.Render("←/→ category · ↑/↓ item · enter place · esc cancel"))
	return sb.String()
}
