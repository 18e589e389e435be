package session

import (
	"github.com/google/uuid"
	"github.com/lifeonlars/styrkur/internal/workout"
)

// ExerciseSummary aggregates the completed work of one exercise.
type ExerciseSummary struct {
	Name          string  `json:"name"`
	CompletedSets int     `json:"completedSets"`
	TotalReps     int     `json:"totalReps"`
	VolumeKg      float64 `json:"volumeKg"`
}

// Summary is the immutable record of a finished session.
type Summary struct {
	ID              string             `json:"id"`
	WorkoutTitle    string             `json:"workoutTitle"`
	StartedAt       workout.Timestamp  `json:"startedAt"`
	EndedAt         workout.Timestamp  `json:"endedAt"`
	DurationMinutes int                `json:"durationMinutes"`
	TotalSets       int                `json:"totalSets"`
	CompletedSets   int                `json:"completedSets"`
	TotalReps       int                `json:"totalReps"`
	TotalWeightKg   float64            `json:"totalWeightKg"`
	Exercises       []ExerciseSummary  `json:"exercises"`
	Notes           string             `json:"notes,omitempty"`
}

// newSummary derives the summary from a finished state. Only entries marked
// complete count toward reps and volume. The per-exercise breakdown follows
// the workout's plan order.
func newSummary(state State, notes string) Summary {
	endedAt := state.StartedAt
	if state.EndedAt != nil {
		endedAt = *state.EndedAt
	}

	summary := Summary{
		ID:              uuid.NewString(),
		WorkoutTitle:    state.Workout.Title,
		StartedAt:       state.StartedAt,
		EndedAt:         endedAt,
		DurationMinutes: int(endedAt.Sub(state.StartedAt.Time).Minutes()),
		TotalSets:       0,
		CompletedSets:   0,
		TotalReps:       0,
		TotalWeightKg:   0,
		Exercises:       []ExerciseSummary{},
		Notes:           notes,
	}

	// Index into summary.Exercises per exercise name. Indexes stay valid
	// across appends, pointers would not.
	byExercise := make(map[string]int)
	for _, group := range state.Workout.Groups {
		log, logged := state.GroupLogs[group.ID]
		if !logged {
			continue
		}
		summary.TotalSets += len(log.Sets)

		for _, set := range log.Sets {
			if set.Complete() {
				summary.CompletedSets++
			}
			for _, cfg := range group.Exercises {
				entry, ok := set.Entries[cfg.Exercise.ID]
				if !ok || !entry.Completed {
					continue
				}

				name := cfg.Exercise.Name
				index, seen := byExercise[name]
				if !seen {
					index = len(summary.Exercises)
					byExercise[name] = index
					summary.Exercises = append(summary.Exercises, ExerciseSummary{
						Name:          name,
						CompletedSets: 0,
						TotalReps:     0,
						VolumeKg:      0,
					})
				}

				volume := float64(entry.Reps) * entry.WeightKg
				summary.Exercises[index].CompletedSets++
				summary.Exercises[index].TotalReps += entry.Reps
				summary.Exercises[index].VolumeKg += volume
				summary.TotalReps += entry.Reps
				summary.TotalWeightKg += volume
			}
		}
	}

	return summary
}
