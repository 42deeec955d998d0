package store

// MoodType is the closed set of categorical mood values.
type MoodType string

const (
	MoodHappy     MoodType = "happy"
	MoodSad       MoodType = "sad"
	MoodAngry     MoodType = "angry"
	MoodAnxious   MoodType = "anxious"
	MoodCalm      MoodType = "calm"
	MoodExcited   MoodType = "excited"
	MoodNeutral   MoodType = "neutral"
	MoodStressed  MoodType = "stressed"
	MoodTired     MoodType = "tired"
	MoodMotivated MoodType = "motivated"
)

// MoodTypes lists all valid mood values in their canonical order.
var MoodTypes = []MoodType{
	MoodHappy,
	MoodSad,
	MoodAngry,
	MoodAnxious,
	MoodCalm,
	MoodExcited,
	MoodNeutral,
	MoodStressed,
	MoodTired,
	MoodMotivated,
}

// IsValid reports whether m is one of the known mood values.
func (m MoodType) IsValid() bool {
	for _, t := range MoodTypes {
		if m == t {
			return true
		}
	}
	return false
}

type Mood struct {
	ID        int32
	CreatorID int32
	MoodType  MoodType
	CreatedTs int64
	UpdatedTs int64
}

type FindMood struct {
	ID        *int32
	CreatorID *int32
	MoodType  *MoodType
	// CreatedTsAfter and CreatedTsBefore bound created_ts inclusively.
	CreatedTsAfter  *int64
	CreatedTsBefore *int64
	// Limit caps the result count; results are always newest first.
	Limit *int
}

type UpdateMood struct {
	ID        int32
	MoodType  *MoodType
	UpdatedTs *int64
}

type DeleteMood struct {
	ID int32
}
