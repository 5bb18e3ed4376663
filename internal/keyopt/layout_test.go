package keyopt

import (
	"math/rand"
	"testing"
)

func assertInvariants(t *testing.T, l *Layout) {
	t.Helper()

	seen := make(map[Slot]Key)
	for _, ss := range StaticKeys {
		key, ok := l.KeyAt(ss.slot)
		if !ok || key != ss.key {
			t.Fatalf("static key %v must stay at %v, got %v (ok=%v)", ss.key, ss.slot, key, ok)
		}
	}

	for _, s := range alphaSlots {
		key, ok := l.KeyAt(s)
		if !ok {
			t.Fatalf("alpha slot %v has no key", s)
		}
		if prior, dup := seen[s]; dup {
			t.Fatalf("slot %v occupied twice: %v and %v", s, prior, key)
		}
		seen[s] = key

		valid := ValidSet(key)
		if !containsSlot(valid, s) {
			t.Fatalf("key %v placed at %v outside its valid set %v", key, s, valid)
		}

		rb, ok := l.GetKeyInfo(key.Base)
		if !ok || rb != s {
			t.Fatalf("reverse[%q] = %v (ok=%v), want %v", key.Base, rb, ok, s)
		}
		rs, ok := l.GetKeyInfo(key.Shift)
		if !ok || rs != s {
			t.Fatalf("reverse[%q] = %v (ok=%v), want %v", key.Shift, rs, ok, s)
		}
	}
}

func TestNewOriginInvariants(t *testing.T) {
	assertInvariants(t, NewOrigin())
}

func TestShuffleInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := NewOrigin()
	l.SetScore(1)
	l.Shuffle(rng, 10)
	assertInvariants(t, l)
	if l.Evaluated() {
		t.Fatalf("Shuffle must clear Evaluated")
	}
}

func TestShuffleDeterministicGivenSeed(t *testing.T) {
	l1 := NewOrigin()
	l1.Shuffle(rand.New(rand.NewSource(42)), 5)

	l2 := NewOrigin()
	l2.Shuffle(rand.New(rand.NewSource(42)), 5)

	for _, s := range alphaSlots {
		k1, _ := l1.KeyAt(s)
		k2, _ := l2.KeyAt(s)
		if k1 != k2 {
			t.Fatalf("same-seed shuffles diverged at %v: %v != %v", s, k1, k2)
		}
	}
}

func TestDoubleSwapRoundTrips(t *testing.T) {
	l := NewOrigin()
	a := NewSlot(HomeRow, ColLIndex)
	b := NewSlot(HomeRow, ColRIndex)

	keyA, _ := l.KeyAt(a)
	keyB, _ := l.KeyAt(b)

	l.place(a, keyB)
	l.place(b, keyA)
	l.place(a, keyA)
	l.place(b, keyB)

	gotA, _ := l.KeyAt(a)
	gotB, _ := l.KeyAt(b)
	if gotA != keyA || gotB != keyB {
		t.Fatalf("double swap did not round-trip: got (%v,%v), want (%v,%v)", gotA, gotB, keyA, keyB)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewOrigin()
	c := l.Clone()

	s := alphaSlots[0]
	k1, _ := l.KeyAt(s)
	k2, _ := l.KeyAt(alphaSlots[1])
	c.place(s, k2)
	c.place(alphaSlots[1], k1)

	origStill, _ := l.KeyAt(s)
	if origStill != k1 {
		t.Fatalf("mutating clone affected original layout")
	}
	if c.id == l.id {
		t.Fatalf("clone must have a distinct id")
	}
}
