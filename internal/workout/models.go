// Package workout holds the workout domain model, the metrics calculator and
// the repositories for persisted workout and program collections.
package workout

import (
	"encoding/json"
	"fmt"
	"time"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// Timestamp is a time.Time that serializes to a sortable UTC string with
// millisecond precision and round-trips exactly.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the serializable millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(t.UTC().Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("marshal timestamp: %w", err)
	}
	return encoded, nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal timestamp: %w", err)
	}
	parsed, err := time.Parse(timestampFormat, raw)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Exercise is exercise metadata as fetched from the external provider.
// Immutable once fetched.
type Exercise struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Equipment          string `json:"equipment,omitempty"`
	Category           string `json:"category,omitempty"`
	PrimaryMuscleIDs   []int  `json:"primaryMuscleIds"`
	SecondaryMuscleIDs []int  `json:"secondaryMuscleIds"`
}

// ExerciseConfig is an exercise plus the user-chosen training parameters.
type ExerciseConfig struct {
	Exercise    Exercise `json:"exercise"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	WeightKg    float64  `json:"weightKg"`
	RestSeconds int      `json:"restSeconds,omitempty"`
	RPE         *int     `json:"rpe,omitempty"`
	Tempo       string   `json:"tempo,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// GroupKind discriminates the group union.
type GroupKind string

const (
	KindSingle   GroupKind = "single"
	KindSuperset GroupKind = "superset"
	KindCircuit  GroupKind = "circuit"
)

// Group is one unit of programming within a workout. For single groups the
// per-exercise set count applies and Rounds is unused. For supersets and
// circuits Rounds is the shared round count for all member exercises.
type Group struct {
	ID        string           `json:"id"`
	Kind      GroupKind        `json:"kind"`
	Rounds    int              `json:"rounds,omitempty"`
	Exercises []ExerciseConfig `json:"exercises"`
}

// Workout is a user-built training plan.
//
// The canonical persisted shape carries all programming in Groups. Older
// records carried three parallel lists (exercises, supersets, circuits);
// those decode through a lossless conversion, see [Workout.UnmarshalJSON].
type Workout struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Groups      []Group   `json:"groups"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Program is an ordered collection of workouts with an optional schedule tag.
type Program struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	WorkoutIDs  []int64   `json:"workoutIds"`
	Schedule    string    `json:"schedule,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// legacyGroup is the shape of superset/circuit entries in the legacy
// three-list workout representation.
type legacyGroup struct {
	ID        string           `json:"id"`
	Rounds    int              `json:"rounds"`
	Exercises []ExerciseConfig `json:"exercises"`
}

type workoutJSON struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Groups      []Group   `json:"groups,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`

	// Legacy three-list representation. Read-only migration input.
	Exercises []ExerciseConfig `json:"exercises,omitempty"`
	Supersets []legacyGroup    `json:"supersets,omitempty"`
	Circuits  []legacyGroup    `json:"circuits,omitempty"`
}

// UnmarshalJSON decodes both the canonical and the legacy workout shape. When
// a record carries both, the canonical group list wins and the legacy lists
// are ignored so that nothing is counted twice.
func (w *Workout) UnmarshalJSON(data []byte) error {
	var raw workoutJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal workout: %w", err)
	}

	groups := raw.Groups
	if len(groups) == 0 {
		groups = groupsFromLegacy(raw.Exercises, raw.Supersets, raw.Circuits)
	}

	*w = Workout{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Groups:      groups,
		Tags:        raw.Tags,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
	return nil
}

// groupsFromLegacy converts the legacy three-list representation into the
// canonical group list, preserving the exercises-supersets-circuits order.
// Entries without an identifier get a deterministic positional one.
func groupsFromLegacy(exercises []ExerciseConfig, supersets, circuits []legacyGroup) []Group {
	total := len(exercises) + len(supersets) + len(circuits)
	if total == 0 {
		return nil
	}

	groups := make([]Group, 0, total)
	for i, exercise := range exercises {
		groups = append(groups, Group{
			ID:        fmt.Sprintf("single-%d", i),
			Kind:      KindSingle,
			Rounds:    0,
			Exercises: []ExerciseConfig{exercise},
		})
	}
	for i, superset := range supersets {
		groups = append(groups, legacyToGroup(superset, KindSuperset, i))
	}
	for i, circuit := range circuits {
		groups = append(groups, legacyToGroup(circuit, KindCircuit, i))
	}
	return groups
}

func legacyToGroup(legacy legacyGroup, kind GroupKind, position int) Group {
	id := legacy.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", kind, position)
	}
	rounds := legacy.Rounds
	if rounds < 1 {
		rounds = 1
	}
	return Group{
		ID:        id,
		Kind:      kind,
		Rounds:    rounds,
		Exercises: legacy.Exercises,
	}
}
