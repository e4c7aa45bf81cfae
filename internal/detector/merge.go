package detector

import (
	"sort"

	"BlockSentinel/internal/model"
)

// MergeZones collapses overlapping same-direction zones into consolidated
// zones. Input zones are never mutated; the result is built from a sorted
// copy with absorbed members tracked explicitly.
//
// The merge is greedy and pairwise in origin-index order: each unabsorbed
// zone becomes an accumulator that absorbs every later same-direction zone
// whose price overlap, relative to the smaller of the two ranges, meets the
// threshold. Absorbing widens the accumulator, so zones further down the list
// are tested against the grown bounds. This is intentionally not a
// transitive-closure merge.
func MergeZones(zones []model.Zone, threshold float64) []model.Zone {
	if len(zones) == 0 {
		return nil
	}

	sorted := make([]model.Zone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OriginIndex < sorted[j].OriginIndex
	})

	absorbed := make([]bool, len(sorted))
	merged := make([]model.Zone, 0, len(sorted))

	for i := range sorted {
		if absorbed[i] {
			continue
		}
		current := sorted[i]

		for j := i + 1; j < len(sorted); j++ {
			if absorbed[j] || sorted[j].Direction != current.Direction {
				continue
			}
			next := sorted[j]

			overlapLow := current.Low
			if next.Low > overlapLow {
				overlapLow = next.Low
			}
			overlapHigh := current.High
			if next.High < overlapHigh {
				overlapHigh = next.High
			}
			if overlapHigh < overlapLow {
				continue
			}

			minRange := current.Height()
			if next.Height() < minRange {
				minRange = next.Height()
			}
			if minRange <= 0 || (overlapHigh-overlapLow)/minRange < threshold {
				continue
			}

			// Union of bounds; best score and deepest touch count win.
			// The accumulator keeps its origin index and sweep flag.
			if next.Low < current.Low {
				current.Low = next.Low
			}
			if next.High > current.High {
				current.High = next.High
			}
			if next.Score > current.Score {
				current.Score = next.Score
			}
			if next.Touches > current.Touches {
				current.Touches = next.Touches
			}
			absorbed[j] = true
		}

		merged = append(merged, current)
	}

	return merged
}
