package performance

import "math"

// OverallScore is the mean of the three component scores, to two decimals.
func OverallScore(s Scores) (float64, error) {
	for _, v := range []float64{s.Attendance, s.Quality, s.Collaboration} {
		if v < 0 || v > maxScore || math.IsNaN(v) {
			return 0, ErrInvalidScore
		}
	}
	mean := (s.Attendance + s.Quality + s.Collaboration) / 3
	return math.Round(mean*100) / 100, nil
}

func Feedback(overall float64) string {
	switch {
	case overall >= 90:
		return FeedbackExcellent
	case overall >= 75:
		return FeedbackGood
	case overall >= 50:
		return FeedbackAverage
	}
	return FeedbackNeedsWork
}

func ValidProgress(progress int) bool {
	return progress >= 0 && progress <= maxProgressPercent
}
