package config

import "testing"

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.TTSizeMB != 64 {
		t.Fatalf("DefaultConfig().TTSizeMB = %d, want 64", c.TTSizeMB)
	}
	if c.Weak {
		t.Fatalf("DefaultConfig().Weak = true, want false")
	}
	if c.LogSearchStats {
		t.Fatalf("DefaultConfig().LogSearchStats = true, want false")
	}
}

func TestStoreGetReturnsLastUpdate(t *testing.T) {
	s := &Store{}
	updated := Config{TTSizeMB: 128, Weak: true, LogSearchStats: true}
	s.Update(updated)
	if got := s.Get(); got != updated {
		t.Fatalf("Get() = %+v, want %+v", got, updated)
	}
}

func TestPackageLevelStoreRoundTrips(t *testing.T) {
	original := Get()
	defer Update(original)

	updated := Config{TTSizeMB: 32, Weak: true, LogSearchStats: false}
	Update(updated)
	if got := Get(); got != updated {
		t.Fatalf("Get() = %+v, want %+v", got, updated)
	}
}
