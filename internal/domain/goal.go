package domain

import "math"

// Sex selects the Mifflin-St Jeor constant term.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a known sex value.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// ActivityLevel is one of five fixed activity tiers.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

// Factor returns the TDEE multiplier for the tier, or 0 for an unknown tier.
func (a ActivityLevel) Factor() float64 {
	switch a {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	}
	return 0
}

// GoalType is the direction of the desired body-mass change.
type GoalType string

const (
	GoalLoss     GoalType = "loss"
	GoalMaintain GoalType = "maintain"
	GoalGain     GoalType = "gain"
)

// Valid reports whether g is a known goal type.
func (g GoalType) Valid() bool {
	return g == GoalLoss || g == GoalMaintain || g == GoalGain
}

// kcalPerKg is the approximate energy content of one kilogram of body mass.
const kcalPerKg = 7700

// GoalInput carries the body metrics for a goal recommendation. Weight and
// height are metric; imperial input must be converted by the caller first.
type GoalInput struct {
	Sex            Sex
	WeightKg       float64
	HeightCm       float64
	Age            int
	Activity       ActivityLevel
	Goal           GoalType
	WeeklyChangeKg float64
}

// Recommendation is the calculator output. DailyDelta is the magnitude of
// the daily deficit or surplus; its direction follows the goal type.
type Recommendation struct {
	Target     int     `json:"target"`
	DailyDelta int     `json:"dailyDelta"`
	BMR        float64 `json:"bmr"`
	TDEE       float64 `json:"tdee"`
}

// Recommend computes a daily calorie target with the Mifflin-St Jeor
// equation. It is pure and has no failure path; validating the input domain
// (positive weight, height, age and weekly change) is the caller's job.
func Recommend(in GoalInput) Recommendation {
	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age)
	if in.Sex == SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	tdee := bmr * in.Activity.Factor()

	var delta float64
	if in.Goal != GoalMaintain {
		delta = in.WeeklyChangeKg * kcalPerKg / 7
	}

	target := tdee
	switch in.Goal {
	case GoalLoss:
		target -= delta
	case GoalGain:
		target += delta
	}

	rounded := int(math.Round(target))
	if rounded < 0 {
		rounded = 0
	}
	return Recommendation{
		Target:     rounded,
		DailyDelta: int(math.Round(delta)),
		BMR:        bmr,
		TDEE:       tdee,
	}
}
