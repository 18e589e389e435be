package workout_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lifeonlars/styrkur/internal/workout"
)

func TestTimestampRoundTrip(t *testing.T) {
	original := workout.NewTimestamp(time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC))

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal timestamp: %v", err)
	}
	if got, want := string(encoded), `"2025-03-14T09:26:53.589Z"`; got != want {
		t.Errorf("encoded timestamp = %s, want %s", got, want)
	}

	var decoded workout.Timestamp
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if !decoded.Equal(original.Time) {
		t.Errorf("round-trip changed instant: got %v, want %v", decoded, original)
	}
}

func TestTimestampTruncatesToMillisecond(t *testing.T) {
	ts := workout.NewTimestamp(time.Date(2025, 3, 14, 9, 26, 53, 589_999_999, time.UTC))

	encoded, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal timestamp: %v", err)
	}

	var decoded workout.Timestamp
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if !decoded.Equal(ts.Time) {
		t.Errorf("sub-millisecond precision must not survive: got %v, want %v", decoded, ts)
	}
}

func TestWorkoutUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []workout.Group
	}{
		{
			name: "canonical groups pass through",
			data: `{
				"id": 1,
				"title": "Push Day",
				"groups": [
					{"id": "g1", "kind": "single", "exercises": [
						{"exercise": {"id": "bp", "name": "Bench Press", "primaryMuscleIds": [4], "secondaryMuscleIds": [5]},
						 "sets": 3, "reps": 10, "weightKg": 60}
					]}
				],
				"createdAt": "2025-01-01T10:00:00.000Z",
				"updatedAt": "2025-01-01T10:00:00.000Z"
			}`,
			want: []workout.Group{
				{
					ID:   "g1",
					Kind: workout.KindSingle,
					Exercises: []workout.ExerciseConfig{
						{
							Exercise: workout.Exercise{
								ID:                 "bp",
								Name:               "Bench Press",
								PrimaryMuscleIDs:   []int{4},
								SecondaryMuscleIDs: []int{5},
							},
							Sets:     3,
							Reps:     10,
							WeightKg: 60,
						},
					},
				},
			},
		},
		{
			name: "legacy three-list shape converts",
			data: `{
				"id": 2,
				"title": "Legacy",
				"exercises": [
					{"exercise": {"id": "sq", "name": "Squat", "primaryMuscleIds": [10], "secondaryMuscleIds": []},
					 "sets": 5, "reps": 5, "weightKg": 100}
				],
				"supersets": [
					{"id": "ss1", "rounds": 4, "exercises": [
						{"exercise": {"id": "cr", "name": "Curl", "primaryMuscleIds": [1], "secondaryMuscleIds": []},
						 "sets": 0, "reps": 12, "weightKg": 15}
					]}
				],
				"circuits": [
					{"rounds": 0, "exercises": [
						{"exercise": {"id": "bw", "name": "Burpee", "primaryMuscleIds": [], "secondaryMuscleIds": []},
						 "sets": 0, "reps": 15, "weightKg": 0}
					]}
				],
				"createdAt": "2025-01-01T10:00:00.000Z",
				"updatedAt": "2025-01-01T10:00:00.000Z"
			}`,
			want: []workout.Group{
				{
					ID:   "single-0",
					Kind: workout.KindSingle,
					Exercises: []workout.ExerciseConfig{
						{
							Exercise: workout.Exercise{
								ID:                 "sq",
								Name:               "Squat",
								PrimaryMuscleIDs:   []int{10},
								SecondaryMuscleIDs: []int{},
							},
							Sets:     5,
							Reps:     5,
							WeightKg: 100,
						},
					},
				},
				{
					ID:     "ss1",
					Kind:   workout.KindSuperset,
					Rounds: 4,
					Exercises: []workout.ExerciseConfig{
						{
							Exercise: workout.Exercise{
								ID:                 "cr",
								Name:               "Curl",
								PrimaryMuscleIDs:   []int{1},
								SecondaryMuscleIDs: []int{},
							},
							Reps:     12,
							WeightKg: 15,
						},
					},
				},
				{
					// Missing identifier and zero rounds get safe defaults.
					ID:     "circuit-0",
					Kind:   workout.KindCircuit,
					Rounds: 1,
					Exercises: []workout.ExerciseConfig{
						{
							Exercise: workout.Exercise{
								ID:                 "bw",
								Name:               "Burpee",
								PrimaryMuscleIDs:   []int{},
								SecondaryMuscleIDs: []int{},
							},
							Reps: 15,
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got workout.Workout
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("unmarshal workout: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.Groups); diff != "" {
				t.Errorf("groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWorkoutUnmarshalPrefersCanonicalGroups(t *testing.T) {
	// A record carrying both shapes must not double-count: the group list is
	// canonical and the legacy lists are ignored.
	data := `{
		"id": 3,
		"title": "Both shapes",
		"groups": [
			{"id": "g1", "kind": "single", "exercises": [
				{"exercise": {"id": "bp", "name": "Bench Press", "primaryMuscleIds": [4], "secondaryMuscleIds": []},
				 "sets": 3, "reps": 10, "weightKg": 20}
			]}
		],
		"exercises": [
			{"exercise": {"id": "bp", "name": "Bench Press", "primaryMuscleIds": [4], "secondaryMuscleIds": []},
			 "sets": 3, "reps": 10, "weightKg": 20}
		],
		"createdAt": "2025-01-01T10:00:00.000Z",
		"updatedAt": "2025-01-01T10:00:00.000Z"
	}`

	var w workout.Workout
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		t.Fatalf("unmarshal workout: %v", err)
	}

	if len(w.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(w.Groups))
	}
	metrics := workout.CalculateMetrics(w)
	if metrics.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3 (no double counting)", metrics.TotalSets)
	}
}

func TestWorkoutMarshalWritesCanonicalShape(t *testing.T) {
	legacy := `{
		"id": 4,
		"title": "Migrating",
		"exercises": [
			{"exercise": {"id": "sq", "name": "Squat", "primaryMuscleIds": [10], "secondaryMuscleIds": []},
			 "sets": 5, "reps": 5, "weightKg": 100}
		],
		"createdAt": "2025-01-01T10:00:00.000Z",
		"updatedAt": "2025-01-01T10:00:00.000Z"
	}`

	var w workout.Workout
	if err := json.Unmarshal([]byte(legacy), &w); err != nil {
		t.Fatalf("unmarshal workout: %v", err)
	}

	encoded, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal workout: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if _, hasLegacy := raw["exercises"]; hasLegacy {
		t.Error("re-encoded workout still carries the legacy exercises list")
	}
	if _, hasGroups := raw["groups"]; !hasGroups {
		t.Error("re-encoded workout is missing the canonical groups list")
	}
}
