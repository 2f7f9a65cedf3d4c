package scoring

// GradeForScore maps a 0-100 composite score to a letter grade. Shared by
// the neighborhood scorer and the opportunity matcher so a 92 reads as an
// "A" everywhere.
func GradeForScore(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "B+"
	case score >= 80:
		return "B"
	case score >= 75:
		return "C+"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
