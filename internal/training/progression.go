package training

import (
	"math"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// RepsInReserve converts a 1-10 RPE into reps in reserve: max(0, 10-rpe).
// A nil RPE is treated as a maximal effort (RPE 10, zero reserve).
func RepsInReserve(rpe *float64) float64 {
	if rpe == nil {
		return 0
	}
	return math.Max(0, 10-*rpe)
}

// EstimatedOneRepMax projects a one-rep max from a performed set using the
// Epley formula with an effort adjustment:
//
//	e1rm = weight * (1 + (reps + reserve) / 30)
//
// The result is rounded half away from zero. Returns ok=false when the
// weight is unset.
func EstimatedOneRepMax(weight *float64, reps int, achievedRPE *float64) (int, bool) {
	if weight == nil {
		return 0, false
	}
	reserve := RepsInReserve(achievedRPE)
	return int(math.Round(*weight * (1 + (float64(reps)+reserve)/30))), true
}

// SuggestedWeight inverts the e1rm formula to derive a working weight for a
// future set from a reference E1RM:
//
//	suggested = anchorE1RM / (1 + (reps + reserve) / 30)
//
// The result is not rounded; display rounding is the caller's concern.
func SuggestedWeight(anchorE1RM float64, reps int, targetRPE *float64) float64 {
	reserve := RepsInReserve(targetRPE)
	return anchorE1RM / (1 + (float64(reps)+reserve)/30)
}

// SetSuggestions computes suggested weights for the sets after the first of
// an exercise anchored to its first set's E1RM, keyed by set index. It
// returns nil when the exercise is not anchored, has fewer than two sets, or
// its first set has no performed weight (no anchor exists).
func SetSuggestions(ex models.Exercise) map[int]float64 {
	if ex.Mode != models.WeightModeAnchoredFirstSet || len(ex.Sets) < 2 {
		return nil
	}
	first := ex.Sets[0]
	anchor, ok := EstimatedOneRepMax(first.Weight, first.Reps, first.AchievedRPE)
	if !ok {
		return nil
	}
	suggestions := make(map[int]float64, len(ex.Sets)-1)
	for _, s := range ex.Sets[1:] {
		if s.SetIndex <= first.SetIndex {
			continue
		}
		suggestions[s.SetIndex] = SuggestedWeight(float64(anchor), s.Reps, s.TargetRPE)
	}
	return suggestions
}
