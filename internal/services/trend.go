package services

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// TrendNoiseMargin is the smallest average difference that counts as a
// direction. Differences at or below it are reported as stable.
const TrendNoiseMargin = 0.5

// ClassifyTrend compares the average of recent against the average of prior.
// An empty window takes the other window's average.
func ClassifyTrend(recent []int, prior []int) Trend {
	recentAverage, recentOK := meanOf(recent)
	priorAverage, priorOK := meanOf(prior)
	switch {
	case !recentOK && !priorOK:
		return TrendStable
	case !recentOK:
		recentAverage = priorAverage
	case !priorOK:
		priorAverage = recentAverage
	}

	switch {
	case recentAverage > priorAverage+TrendNoiseMargin:
		return TrendImproving
	case recentAverage < priorAverage-TrendNoiseMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanOf(values []int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values)), true
}
