package notifier

import (
	"strings"
	"testing"

	"BlockSentinel/internal/model"
)

func TestFormatZoneAlert_Bullish(t *testing.T) {
	z := model.Zone{
		OriginIndex: 20,
		Low:         108.0,
		High:        110.5,
		Direction:   model.Bullish,
		Score:       0.735,
		Touches:     2,
		HasSweep:    true,
	}
	msg := FormatZoneAlert("BTC/USDT", "15m", z)

	for _, want := range []string{
		"🟢",
		"BULLISH",
		"BTC/USDT",
		"15m",
		"108",
		"110.5",
		"0.735",
		"Touches: 2",
		"Liquidity sweep: yes",
		"Candle Index: 20",
		"Buy zone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatZoneAlert_BearishNoSweep(t *testing.T) {
	z := model.Zone{
		OriginIndex: 20,
		Low:         89.5,
		High:        92.0,
		Direction:   model.Bearish,
		Score:       0.61,
	}
	msg := FormatZoneAlert("ETH/USDT", "30m", z)

	if !strings.Contains(msg, "🔴") || !strings.Contains(msg, "BEARISH") {
		t.Errorf("expected bearish styling:\n%s", msg)
	}
	if strings.Contains(msg, "Liquidity sweep") {
		t.Errorf("sweep line must be omitted when no sweep was found:\n%s", msg)
	}
	if !strings.Contains(msg, "Sell zone") {
		t.Errorf("expected sell-side action line:\n%s", msg)
	}
}

func TestFormatScanSummary(t *testing.T) {
	msg := FormatScanSummary(map[string]int{"BTC/USDT 15m": 2})
	if !strings.Contains(msg, "BTC/USDT 15m: 2 zones") {
		t.Errorf("summary missing pair line:\n%s", msg)
	}

	empty := FormatScanSummary(map[string]int{})
	if !strings.Contains(empty, "No zones") {
		t.Errorf("empty summary missing no-zones note:\n%s", empty)
	}
}

func TestFormatStatus(t *testing.T) {
	msg := FormatStatus([]string{"BTC/USDT", "ETH/USDT"}, []string{"15m"}, 1234, 0.5)
	for _, want := range []string{"BTC/USDT, ETH/USDT", "15m", "0.50", "1,234"} {
		if !strings.Contains(msg, want) {
			t.Errorf("status missing %q:\n%s", want, msg)
		}
	}
}
