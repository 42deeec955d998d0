package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyNutritionRecalculate(t *testing.T) {
	tests := []struct {
		name            string
		totalCalories   int32
		stepsWalked     int32
		wantBurned      int32
		wantRemaining   int32
		wantStepsNeeded int32
	}{
		{
			name:            "no intake no steps",
			wantStepsNeeded: 0,
		},
		{
			name:            "intake without steps",
			totalCalories:   2000,
			wantRemaining:   2000,
			wantStepsNeeded: 50000,
		},
		{
			name:            "steps cover part of intake",
			totalCalories:   500,
			stepsWalked:     5000,
			wantBurned:      200,
			wantRemaining:   300,
			wantStepsNeeded: 7500,
		},
		{
			name:          "steps exceed intake",
			totalCalories: 100,
			stepsWalked:   10000,
			wantBurned:    400,
		},
		{
			name:            "burned rounds to nearest",
			totalCalories:   100,
			stepsWalked:     1013, // 40.52 burned
			wantBurned:      41,
			wantRemaining:   59,
			wantStepsNeeded: 1475,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DailyNutrition{
				TotalCalories: tt.totalCalories,
				StepsWalked:   tt.stepsWalked,
			}
			d.Recalculate()
			assert.Equal(t, tt.wantBurned, d.CaloriesBurned)
			assert.Equal(t, tt.wantRemaining, d.RemainingCalories)
			assert.Equal(t, tt.wantStepsNeeded, d.StepsNeeded)
		})
	}
}

func TestMoodTypeIsValid(t *testing.T) {
	for _, moodType := range MoodTypes {
		assert.True(t, moodType.IsValid())
	}
	assert.False(t, MoodType("furious").IsValid())
	assert.False(t, MoodType("").IsValid())
	assert.False(t, MoodType("Happy").IsValid())
}
