package store

import "math"

// caloriesPerStep is the average energy spent per step.
const caloriesPerStep = 0.04

type Food struct {
	ID        int32
	CreatorID int32
	Name      string
	Calories  int32
	Quantity  int32
	// Date is the unix timestamp of when the food was logged.
	Date      int64
	CreatedTs int64
	UpdatedTs int64
}

type FindFood struct {
	ID        *int32
	CreatorID *int32
	// DateAfter (inclusive) and DateBefore (exclusive) bound the log date.
	DateAfter  *int64
	DateBefore *int64
}

type DeleteFood struct {
	ID int32
}

// DailyNutrition is the per-user, per-day rollup of food intake and steps.
// One row exists per (creator, date) pair where date is local midnight.
type DailyNutrition struct {
	ID                int32
	CreatorID         int32
	Date              int64
	TotalCalories     int32
	StepsWalked       int32
	CaloriesBurned    int32
	RemainingCalories int32
	StepsNeeded       int32
	CreatedTs         int64
	UpdatedTs         int64
}

// Recalculate refreshes the derived fields from TotalCalories and StepsWalked.
func (d *DailyNutrition) Recalculate() {
	d.CaloriesBurned = int32(math.Round(float64(d.StepsWalked) * caloriesPerStep))
	remaining := d.TotalCalories - d.CaloriesBurned
	if remaining < 0 {
		remaining = 0
	}
	d.RemainingCalories = remaining
	d.StepsNeeded = int32(math.Ceil(float64(remaining) / caloriesPerStep))
}

type FindDailyNutrition struct {
	CreatorID *int32
	Date      *int64
	// DateAfter and DateBefore bound the date inclusively.
	DateAfter  *int64
	DateBefore *int64
}

// UpsertDailyNutrition inserts or replaces the rollup for (CreatorID, Date).
type UpsertDailyNutrition struct {
	CreatorID         int32
	Date              int64
	TotalCalories     int32
	StepsWalked       int32
	CaloriesBurned    int32
	RemainingCalories int32
	StepsNeeded       int32
	UpdatedTs         int64
}
