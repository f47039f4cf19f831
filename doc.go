// Package cliffordsim simulates Clifford circuits on the Aaronson–Gottesman
// binary-symplectic stabilizer tableau, with Pauli-frame tracking layered on
// the same gate update rules.
//
// A program is an ordered slice of Operation values. An Engine runs the
// program over a fresh Tableau and DataStore: the tableau pass applies the
// gate and measurement rules, and, when the program uses Pauli frames, a
// forward and a backward frame pass propagate and record them. Measurement
// outcomes are reproducible given a seed; bias forces outcomes for
// deterministic initialization.
package cliffordsim
