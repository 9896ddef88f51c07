package order

// Satisfaction scores range from MinSatisfaction to MaxSatisfaction.
const (
	MinSatisfaction = 1
	MaxSatisfaction = 5
)

// SatisfactionScore rates a delivery from 1 to 5.
//
// With an estimate the score follows actual/estimated: up to 1.1 scores 5,
// 1.3 scores 4, 1.5 scores 3, 2.0 scores 2, anything slower scores 1.
// Without an estimate (estimatedSeconds <= 0) absolute thresholds apply:
// under 30s scores 5, 60s scores 4, 90s scores 3, 120s scores 2.
//
// Example:
//
//	SatisfactionScore(60, 50) // ratio 1.2 -> 4
//	SatisfactionScore(45, 0)  // no estimate, under 60s -> 4
func SatisfactionScore(actualSeconds int, estimatedSeconds int) int {
	if estimatedSeconds <= 0 {
		switch {
		case actualSeconds < 30:
			return 5
		case actualSeconds < 60:
			return 4
		case actualSeconds < 90:
			return 3
		case actualSeconds < 120:
			return 2
		default:
			return MinSatisfaction
		}
	}

	ratio := float64(actualSeconds) / float64(estimatedSeconds)
	switch {
	case ratio <= 1.1:
		return MaxSatisfaction
	case ratio <= 1.3:
		return 4
	case ratio <= 1.5:
		return 3
	case ratio <= 2.0:
		return 2
	default:
		return MinSatisfaction
	}
}
