package cliffordsim

import (
	"strings"
	"testing"
)

func TestFrameStringRoundTrip(t *testing.T) {
	for _, s := range []string{"I", "X", "Y", "Z", "XIZY", "IIIII", "ZZXXY"} {
		f, err := FrameFromString(s, Forward)
		if err != nil {
			t.Fatalf("FrameFromString(%q): %v", s, err)
		}
		if got := f.String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
		if f.Len() != len(s) {
			t.Errorf("%q: Len = %d, want %d", s, f.Len(), len(s))
		}
	}
}

func TestFrameFromStringRejectsBadCharacters(t *testing.T) {
	for _, s := range []string{"XQ", "xiz", "X Z", "A"} {
		_, err := FrameFromString(s, Forward)
		if err == nil {
			t.Errorf("FrameFromString(%q) should fail", s)
			continue
		}
		if !strings.Contains(err.Error(), "invalid Pauli character") {
			t.Errorf("FrameFromString(%q) error %q should name the bad character", s, err)
		}
	}
}

func TestFrameEqualityIgnoresID(t *testing.T) {
	a, _ := FrameFromString("XIZ", Forward)
	b, _ := FrameFromString("XIZ", Backward)
	c, _ := FrameFromString("XIY", Forward)
	if a.ID == b.ID {
		t.Fatalf("fresh frames should get distinct ids")
	}
	if !a.Equal(b) {
		t.Errorf("frames with equal (x,z) must compare equal regardless of id and direction")
	}
	if a.Equal(c) {
		t.Errorf("frames with different (x,z) must not compare equal")
	}
	if a.Equal(nil) {
		t.Errorf("nil frame comparison must be false")
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	a, _ := FrameFromString("XZ", Forward)
	b := a.Clone()
	if b.ID != a.ID || !a.Equal(b) {
		t.Fatalf("clone should preserve id and content")
	}
	b.applyHadamard(0)
	if a.String() != "XZ" {
		t.Errorf("mutating a clone leaked into the original")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("forward"); err != nil || d != Forward {
		t.Errorf("forward: got %q, %v", d, err)
	}
	if d, err := ParseDirection("backward"); err != nil || d != Backward {
		t.Errorf("backward: got %q, %v", d, err)
	}
	for _, s := range []string{"", "Forward", "up"} {
		if _, err := ParseDirection(s); err == nil {
			t.Errorf("ParseDirection(%q) should fail", s)
		}
	}
}

func TestFrameGateRules(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		apply func(f *PauliFrame)
		want  string
	}{
		{"H swaps X and Z", "XZ", func(f *PauliFrame) { f.applyHadamard(0); f.applyHadamard(1) }, "ZX"},
		{"H fixes Y", "Y", func(f *PauliFrame) { f.applyHadamard(0) }, "Y"},
		{"S maps X to Y", "X", func(f *PauliFrame) { f.applyPhase(0) }, "Y"},
		{"S maps Y to X", "Y", func(f *PauliFrame) { f.applyPhase(0) }, "X"},
		{"S fixes Z", "Z", func(f *PauliFrame) { f.applyPhase(0) }, "Z"},
		{"CNOT copies X to target", "XI", func(f *PauliFrame) { f.applyCNOT(0, 1) }, "XX"},
		{"CNOT copies Z to control", "IZ", func(f *PauliFrame) { f.applyCNOT(0, 1) }, "ZZ"},
		{"CNOT fixes ZI", "ZI", func(f *PauliFrame) { f.applyCNOT(0, 1) }, "ZI"},
		{"CNOT fixes IX", "IX", func(f *PauliFrame) { f.applyCNOT(0, 1) }, "IX"},
		{"CZ maps XI to XZ", "XI", func(f *PauliFrame) { f.applyCZ(0, 1) }, "XZ"},
		{"CZ maps IX to ZX", "IX", func(f *PauliFrame) { f.applyCZ(0, 1) }, "ZX"},
		{"CZ fixes ZZ", "ZZ", func(f *PauliFrame) { f.applyCZ(0, 1) }, "ZZ"},
	}

	for _, tt := range tests {
		f, err := FrameFromString(tt.in, Forward)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		tt.apply(f)
		if got := f.String(); got != tt.want {
			t.Errorf("%s: %q -> %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestFrameFlipBit(t *testing.T) {
	// flip = 1 iff the frame's Pauli anticommutes with the basis Pauli.
	tests := []struct {
		pauli string
		basis Basis
		want  uint8
	}{
		{"I", BasisZ, 0}, {"X", BasisZ, 1}, {"Y", BasisZ, 1}, {"Z", BasisZ, 0},
		{"I", BasisX, 0}, {"X", BasisX, 0}, {"Y", BasisX, 1}, {"Z", BasisX, 1},
		{"I", BasisY, 0}, {"X", BasisY, 1}, {"Y", BasisY, 0}, {"Z", BasisY, 1},
	}
	for _, tt := range tests {
		f, err := FrameFromString(tt.pauli, Forward)
		if err != nil {
			t.Fatal(err)
		}
		if got := f.flipBit(0, tt.basis); got != tt.want {
			t.Errorf("flipBit(%s, %s) = %d, want %d", tt.pauli, tt.basis, got, tt.want)
		}
	}
}

func TestFrameResize(t *testing.T) {
	f, _ := FrameFromString("XZ", Forward)
	f.insertQubit(1)
	if got := f.String(); got != "XIZ" {
		t.Errorf("after insert: %q, want XIZ", got)
	}
	f.deleteQubit(1)
	if got := f.String(); got != "XZ" {
		t.Errorf("after delete: %q, want XZ", got)
	}
	f.insertQubit(0)
	if got := f.String(); got != "IXZ" {
		t.Errorf("insert at 0: %q, want IXZ", got)
	}
	f.insertQubit(3)
	if got := f.String(); got != "IXZI" {
		t.Errorf("insert at end: %q, want IXZI", got)
	}
}
