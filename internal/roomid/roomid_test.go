package roomid

import (
	"strings"
	"testing"
	"time"
)

func TestNewFormat(t *testing.T) {
	t.Parallel()
	id := New()
	if len(id) != 26 {
		t.Fatalf("len(id) = %d, want 26", len(id))
	}
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("id %q contains %q outside the alphabet", id, c)
		}
	}
}

func TestNewUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewSortsByCreationTime(t *testing.T) {
	t.Parallel()
	first := New()
	time.Sleep(2 * time.Millisecond)
	second := New()
	if first >= second {
		t.Errorf("later id %q does not sort after %q", second, first)
	}
}
