package gf256

import (
	"math/rand"
	"testing"
)

func TestTables(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 255; i++ {
		e := Exp(i)
		if e == 0 {
			t.Fatalf("Exp(%d) = 0", i)
		}
		if seen[e] {
			t.Fatalf("Exp(%d) = %#02x repeats an earlier power", i, e)
		}
		seen[e] = true
	}
	if len(seen) != 255 {
		t.Fatalf("generator powers cover %d elements, want 255", len(seen))
	}
	if Exp(0) != 1 || Exp(255) != 1 {
		t.Errorf("Exp(0) = %d, Exp(255) = %d, want 1 and 1", Exp(0), Exp(255))
	}
	if Exp(-1) != Exp(254) {
		t.Errorf("Exp(-1) = %d, want Exp(254) = %d", Exp(-1), Exp(254))
	}
}

func TestFieldLaws(t *testing.T) {
	for a := 1; a < 256; a++ {
		if Add(byte(a), byte(a)) != 0 {
			t.Fatalf("Add(%d, %d) != 0", a, a)
		}
		if Mul(byte(a), 1) != byte(a) {
			t.Fatalf("Mul(%d, 1) = %d, want %d", a, Mul(byte(a), 1), a)
		}
		for b := 1; b < 256; b++ {
			p := Mul(byte(a), byte(b))
			if p == 0 {
				t.Fatalf("Mul(%d, %d) = 0 for nonzero operands", a, b)
			}
			q, err := Div(p, byte(b))
			if err != nil {
				t.Fatalf("Div(%d, %d) failed: %v", p, b, err)
			}
			if q != byte(a) {
				t.Fatalf("Div(Mul(%d, %d), %d) = %d, want %d", a, b, b, q, a)
			}
		}
	}
}

func TestMulByZero(t *testing.T) {
	for a := 0; a < 256; a++ {
		if Mul(byte(a), 0) != 0 || Mul(0, byte(a)) != 0 {
			t.Fatalf("multiplication by zero is not zero for a = %d", a)
		}
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(7, 0); err != ErrDivisionByZero {
		t.Errorf("Div(7, 0) = %v, want ErrDivisionByZero", err)
	}
	q, err := Div(0, 7)
	if err != nil || q != 0 {
		t.Errorf("Div(0, 7) = %d, %v, want 0, nil", q, err)
	}
}

func TestInv(t *testing.T) {
	for a := 1; a < 256; a++ {
		if Mul(byte(a), Inv(byte(a))) != 1 {
			t.Fatalf("a * Inv(a) != 1 for a = %d", a)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("Inv(0) did not panic")
		}
	}()
	Inv(0)
}

func TestDistributivity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		a, b, c := byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))
		if Mul(a, Add(b, c)) != Add(Mul(a, b), Mul(a, c)) {
			t.Fatalf("a*(b+c) != a*b + a*c for a=%d b=%d c=%d", a, b, c)
		}
		if Mul(a, b) != Mul(b, a) {
			t.Fatalf("multiplication is not commutative for a=%d b=%d", a, b)
		}
		if Mul(Mul(a, b), c) != Mul(a, Mul(b, c)) {
			t.Fatalf("multiplication is not associative for a=%d b=%d c=%d", a, b, c)
		}
	}
}

func TestMulSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	src := make([]byte, 64)
	for c := 0; c < 256; c++ {
		rng.Read(src)
		dst := make([]byte, len(src))
		rng.Read(dst)

		want := make([]byte, len(src))
		for i := range src {
			want[i] = Add(dst[i], Mul(byte(c), src[i]))
		}

		MulSlice(dst, src, byte(c))
		for i := range dst {
			if dst[i] != want[i] {
				t.Fatalf("MulSlice with c=%d differs from scalar ops at byte %d", c, i)
			}
		}
	}
}

func BenchmarkMulSlice(b *testing.B) {
	src := make([]byte, 1452)
	dst := make([]byte, 1452)
	rand.New(rand.NewSource(3)).Read(src)
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		MulSlice(dst, src, 0x53)
	}
}
