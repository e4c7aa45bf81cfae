package state

import (
	"path/filepath"
	"testing"

	"BlockSentinel/internal/model"
)

func TestManager_MarkSeen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}

	isNew, err := m.MarkSeen("BTC/USDT_15m_20_bullish_0.74")
	if err != nil {
		t.Fatal(err)
	}
	if !isNew {
		t.Error("first mark must report new")
	}

	isNew, err = m.MarkSeen("BTC/USDT_15m_20_bullish_0.74")
	if err != nil {
		t.Fatal(err)
	}
	if isNew {
		t.Error("second mark of the same key must report not-new")
	}
	if m.Len() != 1 {
		t.Errorf("len: got %d, want 1", m.Len())
	}
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	m1, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m1.MarkSeen("ETH/USDT_30m_41_bearish_0.61"); err != nil {
		t.Fatal(err)
	}

	m2, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if !m2.IsSeen("ETH/USDT_30m_41_bearish_0.61") {
		t.Error("fingerprint lost across restart")
	}
	if m2.Len() != 1 {
		t.Errorf("len after reload: got %d, want 1", m2.Len())
	}
}

func TestManager_MissingFileStartsEmpty(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "nope", "seen.json"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", m.Len())
	}
}

func TestZoneKey(t *testing.T) {
	z := model.Zone{OriginIndex: 20, Direction: model.Bullish, Score: 0.735}
	key := ZoneKey("BTC/USDT", "15m", z)
	want := "BTC/USDT_15m_20_bullish_0.73"
	if key != want {
		t.Errorf("zone key: got %q, want %q", key, want)
	}

	// Score noise below 2 decimals must not change the key.
	z2 := z
	z2.Score = 0.734
	if ZoneKey("BTC/USDT", "15m", z2) != key {
		t.Error("sub-cent score noise must map to the same key")
	}
}
