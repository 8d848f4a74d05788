package glyphatlas

import "testing"

// --- Matrix Tests ---

func TestIdentityIsNeutral(t *testing.T) {
	m := Scale(2, 3, 4).Mul(Translate(1, -2, 0.5))

	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestTranslateThenScale(t *testing.T) {
	// Row-major, column vectors on the right: T * S applies S first.
	m := Translate(10, 20, 0).Mul(Scale(2, 2, 1))

	want := Mat4{
		2, 0, 0, 10,
		0, 2, 0, 20,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	if m != want {
		t.Errorf("T*S = %v, want %v", m, want)
	}
}

func TestScaleThenTranslate(t *testing.T) {
	m := Scale(2, 2, 1).Mul(Translate(10, 20, 0))

	want := Mat4{
		2, 0, 0, 20,
		0, 2, 0, 40,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	if m != want {
		t.Errorf("S*T = %v, want %v", m, want)
	}
}

// --- Color Tests ---

func TestRGBAComponents(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0.25, A: 0.75}
	got := c.components()
	want := [4]float32{1, 0.5, 0.25, 0.75}
	if got != want {
		t.Errorf("components = %v, want %v", got, want)
	}
}

func TestRGBAPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}
	p := c.Premultiply()
	want := RGBA{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if p != want {
		t.Errorf("Premultiply = %v, want %v", p, want)
	}
}
