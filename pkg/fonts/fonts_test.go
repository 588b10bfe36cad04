package fonts

import "testing"

func TestLoadFallsBack(t *testing.T) {
	f := Load("definitely-not-a-font-7f3a.ttf", 24)
	if f == nil || f.Face == nil {
		t.Fatal("Load returned no face")
	}
	if !f.Fallback {
		t.Error("Fallback = false for a missing font")
	}
	if f.Name != DefaultName && f.Name != EmbeddedName {
		t.Errorf("Name = %q, want %q or %q", f.Name, DefaultName, EmbeddedName)
	}
	if f.Size != 24 {
		t.Errorf("Size = %d, want 24", f.Size)
	}
	if f.Metrics().Height <= 0 {
		t.Error("fallback face has no height")
	}
}

func TestLoadNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		if f := Load("", size); f.Size != minSize {
			t.Errorf("Load(size=%d).Size = %d, want %d", size, f.Size, minSize)
		}
	}
}

func TestLoadSet(t *testing.T) {
	s := LoadSet("missing-body.ttf", "missing-time.ttf", 32)
	defer s.Close()

	if s.Body.Size != 32 {
		t.Errorf("Body.Size = %d, want 32", s.Body.Size)
	}
	if s.Timestamp.Size != 28 {
		t.Errorf("Timestamp.Size = %d, want 28", s.Timestamp.Size)
	}
}

func TestLoadEmbeddedScales(t *testing.T) {
	small := loadEmbedded(12)
	large := loadEmbedded(48)
	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("height at 12px (%v) should be below height at 48px (%v)",
			small.Metrics().Height, large.Metrics().Height)
	}
}
