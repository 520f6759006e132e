package permtables

import "testing"

func TestForSizesAndOrder(t *testing.T) {
	t.Parallel()

	for k := 1; k <= MaxK; k++ {
		tbl := For(k)
		want := factorial(k)
		if len(tbl.Perm) != want {
			t.Fatalf("k=%d: len(Perm)=%d, want %d", k, len(tbl.Perm), want)
		}
		if len(tbl.Orientable) != want/2 && want != 1 {
			t.Fatalf("k=%d: len(Orientable)=%d, want %d", k, len(tbl.Orientable), want/2)
		}

		for i := 1; i < len(tbl.Perm); i++ {
			a, b := tbl.Perm[i-1], tbl.Perm[i]
			if !lessImages(a[:k], b[:k]) {
				t.Fatalf("k=%d: Perm not lexicographically increasing at %d", k, i)
			}
		}
	}
}

func lessImages(a, b []int8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func TestForIsCached(t *testing.T) {
	t.Parallel()

	a := For(4)
	b := For(4)
	if &a.Perm[0] != &b.Perm[0] {
		t.Fatalf("For(4) returned distinct backing arrays on repeated calls")
	}
}
