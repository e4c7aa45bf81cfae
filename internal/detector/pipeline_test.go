package detector

import (
	"testing"

	"BlockSentinel/internal/model"
)

func TestIsCandidate(t *testing.T) {
	p := DefaultParams()
	p.BodyMinRatio = 0.5
	p.WickMaxRatio = 0.3
	unit := 1.0

	tests := []struct {
		name string
		c    model.OHLCV
		dir  model.Direction
		want bool
	}{
		{"bullish down candle small wick", candle(0, 110, 110.1, 108, 109, 0), model.Bullish, true},
		{"bullish rejects up candle", candle(0, 109, 110.1, 108, 110, 0), model.Bullish, false},
		{"bullish rejects tiny body", candle(0, 110, 110.05, 109.5, 109.8, 0), model.Bullish, false},
		{"bullish rejects big upper wick", candle(0, 110, 111, 108, 109, 0), model.Bullish, false},
		{"bearish up candle small wick", candle(0, 100, 102, 99.9, 101.5, 0), model.Bearish, true},
		{"bearish rejects down candle", candle(0, 101.5, 102, 99.9, 100, 0), model.Bearish, false},
		{"bearish rejects big lower wick", candle(0, 100, 102, 99, 101.5, 0), model.Bearish, false},
	}
	for _, tt := range tests {
		if got := isCandidate(tt.c, unit, tt.dir, p); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestConfirmImpulse_Bullish(t *testing.T) {
	p := DefaultParams()
	p.Lookahead = 5
	p.MinDirCandles = 3
	p.MinNetMove = 1.0

	// Candidate at 0, followed by 5 up candles climbing well past its high.
	bars := []model.OHLCV{
		candle(0, 110, 110.5, 108, 108.5, 0),
	}
	for j := 0; j < 5; j++ {
		o := 108.5 + float64(j)
		bars = append(bars, candle(1+j, o, o+1.2, o-0.1, o+1, 0))
	}

	ok, strength := confirmImpulse(bars, 0, model.Bullish, 1.0, p)
	if !ok {
		t.Fatal("expected impulse confirmation")
	}
	if strength <= 0 || strength > 1 {
		t.Errorf("strength %g out of (0,1]", strength)
	}
}

func TestConfirmImpulse_FailsOnWeakFollowThrough(t *testing.T) {
	p := DefaultParams()
	p.Lookahead = 5
	p.MinDirCandles = 3
	p.MinNetMove = 1.0

	// Sideways drift after the candidate: down candles, no net move.
	bars := []model.OHLCV{
		candle(0, 110, 110.5, 108, 108.5, 0),
	}
	for j := 0; j < 5; j++ {
		bars = append(bars, candle(1+j, 108.5, 108.9, 108.2, 108.3, 0))
	}

	if ok, strength := confirmImpulse(bars, 0, model.Bullish, 1.0, p); ok || strength != 0 {
		t.Errorf("expected failed confirmation with zero strength, got ok=%v strength=%g", ok, strength)
	}
}

func TestConfirmImpulse_WindowTooShort(t *testing.T) {
	p := DefaultParams()
	bars := []model.OHLCV{
		candle(0, 110, 110.5, 108, 108.5, 0),
		candle(1, 108.5, 112, 108.4, 111.8, 0),
	}
	if ok, _ := confirmImpulse(bars, 0, model.Bullish, 1.0, p); ok {
		t.Error("a single lookahead candle must not confirm")
	}
}

func TestDetectSweep_Bullish(t *testing.T) {
	// Zone [100, 105]; the next candle wicks below 100 and closes back inside.
	bars := []model.OHLCV{
		candle(0, 104, 105, 100, 100.5, 0),
		candle(1, 104.5, 105, 99, 104.6, 0),
	}
	ok, offset := detectSweep(bars, 0, 100, 105, model.Bullish, 3, 0.6)
	if !ok {
		t.Fatal("expected sweep detection")
	}
	if offset != 1 {
		t.Errorf("sweep offset: got %d, want 1", offset)
	}
}

func TestDetectSweep_CloseOutsideIsNoSweep(t *testing.T) {
	// Long lower wick but the close stays below the zone: a breakdown, not a sweep.
	bars := []model.OHLCV{
		candle(0, 104, 105, 100, 100.5, 0),
		candle(1, 100.2, 100.3, 95, 99.5, 0),
	}
	if ok, _ := detectSweep(bars, 0, 100, 105, model.Bullish, 3, 0.6); ok {
		t.Error("close outside the zone must not count as a sweep")
	}
}

func TestDetectSweep_SkipsZeroRangeCandles(t *testing.T) {
	bars := []model.OHLCV{
		candle(0, 104, 105, 100, 100.5, 0),
		candle(1, 99, 99, 99, 99, 0), // zero range below the zone
		candle(2, 104.5, 105, 99, 104.6, 0),
	}
	ok, offset := detectSweep(bars, 0, 100, 105, model.Bullish, 3, 0.6)
	if !ok || offset != 2 {
		t.Errorf("expected sweep at offset 2 past the flat candle, got ok=%v offset=%d", ok, offset)
	}
}

func TestDetectSweep_Bearish(t *testing.T) {
	// Zone [100, 105]; candle spikes above 105 on a long upper wick, closes back in.
	bars := []model.OHLCV{
		candle(0, 101, 105, 100, 104.5, 0),
		candle(1, 100.5, 110, 100.4, 100.6, 0),
	}
	ok, offset := detectSweep(bars, 0, 100, 105, model.Bearish, 3, 0.6)
	if !ok || offset != 1 {
		t.Errorf("expected bearish sweep at offset 1, got ok=%v offset=%d", ok, offset)
	}
}

func TestCountTouches_StopsAfterBreak(t *testing.T) {
	// Bullish zone [100, 105], height 5, break level = 99.5.
	bars := []model.OHLCV{
		candle(0, 104, 105, 100, 100.5, 0),
		candle(1, 105, 106, 103, 104, 0),  // touch 1
		candle(2, 104, 104.5, 98, 99, 0),  // touch 2, closes below 99.5: break
		candle(3, 99, 104, 98.5, 103, 0),  // would touch, but counting is frozen
		candle(4, 103, 104, 101, 102, 0),  // same
	}
	if got := countTouches(bars, 0, 100, 105, model.Bullish, len(bars)-1); got != 2 {
		t.Errorf("touches: got %d, want 2 (frozen after break)", got)
	}
}

func TestCountTouches_NonIntersectingCandlesDontCount(t *testing.T) {
	bars := []model.OHLCV{
		candle(0, 104, 105, 100, 100.5, 0),
		candle(1, 107, 108, 106, 107.5, 0), // above the zone
		candle(2, 106, 107, 104.9, 105.5, 0), // dips into the zone: touch
		candle(3, 108, 109, 107, 108.5, 0), // above again
	}
	if got := countTouches(bars, 0, 100, 105, model.Bullish, len(bars)-1); got != 1 {
		t.Errorf("touches: got %d, want 1", got)
	}
}

func TestCountTouches_Monotonic(t *testing.T) {
	bars := bullishScenario()
	zoneLow, zoneHigh := 108.0, 110.5

	prev := 0
	for end := 21; end < len(bars); end++ {
		got := countTouches(bars, 20, zoneLow, zoneHigh, model.Bullish, end)
		if got < prev {
			t.Fatalf("touch count decreased from %d to %d at end index %d", prev, got, end)
		}
		prev = got
	}
}
