package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"BlockSentinel/internal/model"
)

// FormatZoneAlert formats a detected order block into a Telegram message.
func FormatZoneAlert(symbol, timeframe string, z model.Zone) string {
	var b strings.Builder

	emoji := "🟢"
	action := "Buy zone identified"
	if z.Direction == model.Bearish {
		emoji = "🔴"
		action = "Sell zone identified"
	}

	b.WriteString(fmt.Sprintf("%s <b>%s Order Block Detected</b>\n\n", emoji, strings.ToUpper(string(z.Direction))))
	b.WriteString(fmt.Sprintf("Symbol: %s\n", symbol))
	b.WriteString(fmt.Sprintf("Timeframe: %s\n", timeframe))
	b.WriteString(fmt.Sprintf("Zone: %s – %s\n", humanize.Commaf(z.Low), humanize.Commaf(z.High)))
	b.WriteString(fmt.Sprintf("Confidence: %.3f\n", z.Score))
	b.WriteString(fmt.Sprintf("Touches: %d\n", z.Touches))
	if z.HasSweep {
		b.WriteString("Liquidity sweep: yes\n")
	}
	b.WriteString(fmt.Sprintf("Candle Index: %d\n", z.OriginIndex))
	b.WriteString("\n" + action)

	return b.String()
}

// FormatScanSummary formats the outcome of one manual scan run.
func FormatScanSummary(results map[string]int) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Scan complete</b>\n\n")
	total := 0
	for pair, count := range results {
		b.WriteString(fmt.Sprintf("%s: %d zones\n", pair, count))
		total += count
	}
	if total == 0 {
		b.WriteString("No zones above the notification threshold.")
	}
	return b.String()
}

// FormatStatus formats the bot status reply.
func FormatStatus(symbols, timeframes []string, seenCount int, scoreMin float64) string {
	var b strings.Builder
	b.WriteString("📊 <b>BlockSentinel status</b>\n\n")
	b.WriteString(fmt.Sprintf("Symbols: %s\n", strings.Join(symbols, ", ")))
	b.WriteString(fmt.Sprintf("Timeframes: %s\n", strings.Join(timeframes, ", ")))
	b.WriteString(fmt.Sprintf("Alert threshold: %.2f\n", scoreMin))
	b.WriteString(fmt.Sprintf("Zones alerted so far: %s\n", humanize.Comma(int64(seenCount))))
	return b.String()
}
