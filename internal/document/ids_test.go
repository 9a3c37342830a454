package document

import (
	"bytes"
	"strings"
	"testing"

	"pagesmith/internal/domain"
)

func TestNanoIDLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{8, 16, 24} {
		id := NanoID(n)()
		if len(id) != n {
			t.Fatalf("NanoID(%d) produced length %d", n, len(id))
		}
		for _, c := range id {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')) {
				t.Fatalf("unexpected character %q in %q", c, id)
			}
		}
	}
}

func TestNanoIDLengthFloor(t *testing.T) {
	for _, n := range []int{1, 2, MinNanoIDLength - 1} {
		if id := NanoID(n)(); len(id) != MinNanoIDLength {
			t.Fatalf("NanoID(%d) produced %q, want length %d", n, id, MinNanoIDLength)
		}
	}
	if id := NanoID(0)(); len(id) != 16 {
		t.Fatalf("NanoID(0) should default to 16, got %q", id)
	}
}

func TestNanoIDRedrawsBiasedBytes(t *testing.T) {
	// 255 and 252 fall outside the unbiased range and must be skipped.
	src := bytes.NewReader([]byte{255, 0, 252, 35, 36, 251})
	id, err := nanoid(src, 4)
	if err != nil {
		t.Fatalf("nanoid error: %v", err)
	}
	if id != "0z0z" {
		t.Fatalf("unexpected id %q", id)
	}
	if _, err := nanoid(bytes.NewReader([]byte{0}), 3); err == nil {
		t.Fatalf("expected error when the source runs dry")
	}
}

func TestUUIDv7Format(t *testing.T) {
	id := UUIDv7()()
	if len(id) != 36 || len(strings.Split(id, "-")) != 5 {
		t.Fatalf("unexpected uuid format: %q", id)
	}
}

func TestSequence(t *testing.T) {
	g := Sequence("e")
	if a, b := g(), g(); a != "e1" || b != "e2" {
		t.Fatalf("Sequence produced %q, %q", a, b)
	}
}

func TestUniqueIDRedrawsOnClash(t *testing.T) {
	calls := 0
	ids := []string{"dup", "dup", "fresh"}
	s := NewStore(func() string {
		id := ids[calls]
		calls++
		return id
	})
	base := domain.Document{Elements: []domain.Element{{ID: "dup", Kind: domain.KindDivider}}}
	d, err := s.Create(base, domain.KindHeading, domain.Position{})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if d.SelectedElementID != "fresh" {
		t.Fatalf("expected clash to be re-drawn, got %q", d.SelectedElementID)
	}
}
