package component

import "testing"

func TestIdentityMul(t *testing.T) {
	identity := Identity()

	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	if got := m.Mul(identity); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := identity.Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMulKnownProduct(t *testing.T) {
	// Uniform scaling by 2 composed with itself scales by 4.
	scale2 := Mat4{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 2,
	}
	want := Mat4{
		4, 0, 0, 0,
		0, 4, 0, 0,
		0, 0, 4, 0,
		0, 0, 0, 4,
	}

	if got := scale2.Mul(scale2); got != want {
		t.Errorf("scale2 * scale2 = %v, want %v", got, want)
	}
}

func TestRepeatedIdentityMulIsStable(t *testing.T) {
	identity := Identity()
	m := identity

	for i := 0; i < 100; i++ {
		m = m.Mul(identity)
	}

	if m != identity {
		t.Errorf("identity drifted after repeated multiplication: %v", m)
	}
}

func TestTagSlot(t *testing.T) {
	tests := []struct {
		slot  TagSlot
		valid bool
		str   string
	}{
		{0, true, "A"},
		{1, true, "B"},
		{25, true, "Z"},
		{-1, false, "TagSlot(-1)"},
		{26, false, "TagSlot(26)"},
	}

	for _, tt := range tests {
		if got := tt.slot.Valid(); got != tt.valid {
			t.Errorf("TagSlot(%d).Valid() = %v, want %v", tt.slot, got, tt.valid)
		}
		if got := tt.slot.String(); got != tt.str {
			t.Errorf("TagSlot(%d).String() = %q, want %q", tt.slot, got, tt.str)
		}
	}
}
