package models

import "math"

// Grade is a recorded letter grade.
type Grade struct {
	Grade    string  `json:"grade"`
	Points   float64 `json:"points"`
	Semester string  `json:"semester"`
}

// GradeOption is one entry of the grade scale.
type GradeOption struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// GradeScale lists the letter grades from best to worst.
var GradeScale = []GradeOption{
	{"A", 4.0}, {"A-", 3.7}, {"B+", 3.3}, {"B", 3.0}, {"B-", 2.7},
	{"C+", 2.3}, {"C", 2.0}, {"C-", 1.7}, {"D+", 1.3}, {"D", 1.0}, {"F", 0.0},
}

// PointsFor returns the canonical points of a letter grade.
func PointsFor(letter string) (float64, bool) {
	for _, opt := range GradeScale {
		if opt.Grade == letter {
			return opt.Points, true
		}
	}
	return 0, false
}

// Canonical reports whether points match the mapping of the grade letter.
func (g Grade) Canonical() bool {
	points, ok := PointsFor(g.Grade)
	return ok && math.Abs(points-g.Points) < 1e-9
}

// PointsTone colours a points value: 3.7 and above green, 3.0 yellow, 2.0 orange, otherwise red.
func PointsTone(points float64) Tone {
	switch {
	case points >= 3.7:
		return ToneGreen
	case points >= 3.0:
		return ToneYellow
	case points >= 2.0:
		return ToneOrange
	default:
		return ToneRed
	}
}

// GPATone colours a GPA: 3.5 green, 3.0 yellow, 2.5 orange, otherwise red.
func GPATone(gpa float64) Tone {
	switch {
	case gpa >= 3.5:
		return ToneGreen
	case gpa >= 3.0:
		return ToneYellow
	case gpa >= 2.5:
		return ToneOrange
	default:
		return ToneRed
	}
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
