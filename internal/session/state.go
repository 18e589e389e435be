// Package session tracks in-progress training sessions. A browser scope has
// at most one active and at most one paused session at a time; finished
// sessions are summarized into a bounded history.
package session

import (
	"github.com/lifeonlars/styrkur/internal/workout"
)

// ExerciseEntry is the logged result for one exercise within one set or
// round.
type ExerciseEntry struct {
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg"`
	Completed bool    `json:"completed"`
}

// SetLog holds the per-exercise entries of one planned set or round, keyed by
// exercise ID.
type SetLog struct {
	Entries map[string]ExerciseEntry `json:"entries"`
}

// Complete reports whether every exercise in the set is marked complete. An
// empty set is never complete.
func (l SetLog) Complete() bool {
	if len(l.Entries) == 0 {
		return false
	}
	for _, entry := range l.Entries {
		if !entry.Completed {
			return false
		}
	}
	return true
}

// GroupLog tracks the planned sets of one workout group during a session.
type GroupLog struct {
	Sets []SetLog `json:"sets"`
}

// State is a running or paused session: a workout snapshot plus per-group
// logging. PausedAt is only present while the state sits in the paused slot.
type State struct {
	Workout   workout.Workout     `json:"workout"`
	StartedAt workout.Timestamp   `json:"startedAt"`
	EndedAt   *workout.Timestamp  `json:"endedAt,omitempty"`
	PausedAt  *workout.Timestamp  `json:"pausedAt,omitempty"`
	GroupLogs map[string]GroupLog `json:"groupLogs"`
}

// HasCompletedSets reports whether any set in any group log is complete,
// which decides whether ending the session is worth a summary.
func (s State) HasCompletedSets() bool {
	for _, log := range s.GroupLogs {
		for _, set := range log.Sets {
			if set.Complete() {
				return true
			}
		}
	}
	return false
}

// newState snapshots a workout into a fresh session with group logs sized to
// the plan: one set log per planned set for singles, one per round for
// supersets and circuits, pre-filled with the planned reps and weight.
func newState(w workout.Workout, startedAt workout.Timestamp) State {
	groupLogs := make(map[string]GroupLog, len(w.Groups))
	for _, group := range w.Groups {
		groupLogs[group.ID] = newGroupLog(group)
	}
	return State{
		Workout:   w,
		StartedAt: startedAt,
		EndedAt:   nil,
		PausedAt:  nil,
		GroupLogs: groupLogs,
	}
}

func newGroupLog(group workout.Group) GroupLog {
	setCount := 0
	switch group.Kind {
	case workout.KindSingle:
		for _, cfg := range group.Exercises {
			setCount = max(setCount, cfg.Sets)
		}
	case workout.KindSuperset, workout.KindCircuit:
		setCount = group.Rounds
	}
	if setCount < 1 {
		setCount = 1
	}

	sets := make([]SetLog, setCount)
	for i := range sets {
		entries := make(map[string]ExerciseEntry, len(group.Exercises))
		for _, cfg := range group.Exercises {
			entries[cfg.Exercise.ID] = ExerciseEntry{
				Reps:      cfg.Reps,
				WeightKg:  cfg.WeightKg,
				Completed: false,
			}
		}
		sets[i] = SetLog{Entries: entries}
	}
	return GroupLog{Sets: sets}
}
