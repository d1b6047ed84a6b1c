// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestNewMat4FromTRSDecomposeRoundTrip(t *testing.T) {
	trans := NewVec3(1.5, -2.0, 3.25)
	rot := NewQuaternionFromAxisAngle(NewVec3(0, 1, 0), math.Pi/3)
	scale := NewVec3(2.0, 1.0, 0.5)

	m := NewMat4FromTRS(trans, rot, scale)
	dt, dr, ds := m.Decompose()

	if !dt.NearEquals(trans, 1e-9) {
		t.Fatalf("translation mismatch: want=%v got=%v", trans, dt)
	}
	if !dr.NearEquals(rot, 1e-9) {
		t.Fatalf("rotation mismatch: want=%v got=%v", rot, dr)
	}
	if !ds.NearEquals(scale, 1e-9) {
		t.Fatalf("scale mismatch: want=%v got=%v", scale, ds)
	}
}

func TestMat4InvertedGivesIdentity(t *testing.T) {
	m := NewMat4FromTRS(
		NewVec3(0.5, 2.0, -1.0),
		NewQuaternionFromAxisAngle(NewVec3(1, 0, 1), 0.7),
		OneVec3(),
	)
	ident := m.Muled(m.Inverted())
	if !ident.NearEquals(NewMat4Ident(), 1e-9) {
		t.Fatalf("m*m^-1 should be identity: got=%v", ident)
	}
}

func TestMat4MuledVec3AppliesTranslation(t *testing.T) {
	m := NewMat4FromTranslation(NewVec3(1, 2, 3))
	p := m.MuledVec3(NewVec3(0.5, 0, -0.5))
	if !p.NearEquals(NewVec3(1.5, 2.0, 2.5), 1e-12) {
		t.Fatalf("transformed point mismatch: got=%v", p)
	}
}

func TestQuaternionNearEqualsTreatsNegationAsSameRotation(t *testing.T) {
	q := NewQuaternionFromAxisAngle(NewVec3(0, 0, 1), 1.2)
	neg := NewQuaternion(-q.Real, -q.Imag, -q.Jmag, -q.Kmag)
	if !q.NearEquals(neg, 1e-12) {
		t.Fatalf("q and -q should be the same rotation")
	}
}
