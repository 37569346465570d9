package poker

import (
	"testing"

	"github.com/puarinanhh/texas-hold-em/internal/randutil"
)

func TestDeckDealsUniqueCards(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(1))

	seen := make(map[Card]bool)
	cards, err := deck.Deal(52)
	if err != nil {
		t.Fatalf("Deal(52): %v", err)
	}
	for _, c := range cards {
		if seen[c] {
			t.Errorf("duplicate card dealt: %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("dealt %d unique cards, want 52", len(seen))
	}
	if deck.Remaining() != 0 {
		t.Errorf("Remaining() = %d after full deal, want 0", deck.Remaining())
	}
}

func TestDeckExhausted(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(1))

	if _, err := deck.Deal(50); err != nil {
		t.Fatalf("Deal(50): %v", err)
	}
	if _, err := deck.Deal(3); err == nil {
		t.Errorf("Deal past end succeeded, want error")
	}
	// The failed deal must not consume cards.
	if deck.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", deck.Remaining())
	}
	if _, err := deck.Deal(2); err != nil {
		t.Errorf("Deal(2) on remaining cards: %v", err)
	}
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	first := NewDeck(randutil.New(42))
	second := NewDeck(randutil.New(42))

	a, err := first.Deal(10)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	b, err := second.Deal(10)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", a, b)
		}
	}
}

func TestDeckResetRestoresFullDeck(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(7))

	if _, err := deck.Deal(20); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	deck.Reset()
	if deck.Remaining() != 52 {
		t.Errorf("Remaining() after Reset = %d, want 52", deck.Remaining())
	}
}

func TestNewDeckPanicsOnNilRNG(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Errorf("NewDeck(nil) did not panic")
		}
	}()
	NewDeck(nil)
}
