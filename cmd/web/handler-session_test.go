package main

import (
	"net/http"
	"testing"

	"github.com/lifeonlars/styrkur/internal/session"
	"github.com/lifeonlars/styrkur/internal/workout"
)

type setPayload struct {
	GroupID    string  `json:"groupId"`
	SetIndex   int     `json:"setIndex"`
	ExerciseID string  `json:"exerciseId"`
	Reps       float64 `json:"reps"`
	WeightKg   float64 `json:"weightKg"`
	Completed  bool    `json:"completed"`
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	server, client := newTestServer(t, "http://exercisedb.invalid")

	var created workout.Workout
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/workouts", benchPressWorkout(), &created); status != http.StatusCreated {
		t.Fatalf("create workout: got status %d", status)
	}

	var state session.State
	start := map[string]int64{"workoutId": created.ID}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/start", start, &state); status != http.StatusCreated {
		t.Fatalf("start session: got status %d", status)
	}
	if got := len(state.GroupLogs["single-0"].Sets); got != 3 {
		t.Fatalf("got %d planned sets, want 3", got)
	}

	logSet := setPayload{
		GroupID:    "single-0",
		SetIndex:   0,
		ExerciseID: "42",
		Reps:       10,
		WeightKg:   60,
		Completed:  true,
	}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/sets", logSet, &state); status != http.StatusOK {
		t.Fatalf("log set: got status %d", status)
	}
	entry := state.GroupLogs["single-0"].Sets[0].Entries["42"]
	if !entry.Completed || entry.Reps != 10 || entry.WeightKg != 60 {
		t.Fatalf("got entry %+v after logging", entry)
	}

	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/pause", nil, &state); status != http.StatusOK {
		t.Fatalf("pause session: got status %d", status)
	}
	if state.PausedAt == nil {
		t.Fatal("paused session has no pause marker")
	}

	// The paused session still shows as the current one.
	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/session", nil, &state); status != http.StatusOK {
		t.Fatalf("get paused session: got status %d", status)
	}

	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/resume", nil, &state); status != http.StatusOK {
		t.Fatalf("resume session: got status %d", status)
	}
	if state.PausedAt != nil {
		t.Fatal("resumed session still carries a pause marker")
	}
	if got := state.GroupLogs["single-0"].Sets[0].Entries["42"]; !got.Completed {
		t.Fatal("logged set lost across pause and resume")
	}

	var summary session.Summary
	complete := map[string]string{"notes": "solid session"}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/complete", complete, &summary); status != http.StatusOK {
		t.Fatalf("complete session: got status %d", status)
	}
	if summary.TotalSets != 3 || summary.CompletedSets != 1 {
		t.Errorf("got %d/%d completed sets, want 1/3", summary.CompletedSets, summary.TotalSets)
	}
	if summary.TotalReps != 10 || summary.TotalWeightKg != 600 {
		t.Errorf("got %d reps and %v kg, want 10 reps and 600 kg", summary.TotalReps, summary.TotalWeightKg)
	}
	if summary.Notes != "solid session" {
		t.Errorf("got notes %q", summary.Notes)
	}

	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/session", nil, nil); status != http.StatusNotFound {
		t.Fatalf("get session after completion: got status %d, want 404", status)
	}

	var history []session.Summary
	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/session/history", nil, &history); status != http.StatusOK {
		t.Fatalf("get history: got status %d", status)
	}
	if len(history) != 1 || history[0].ID != summary.ID {
		t.Fatalf("got history %+v, want the one completed summary", history)
	}
}

func TestSessionDiscard(t *testing.T) {
	t.Parallel()
	server, client := newTestServer(t, "http://exercisedb.invalid")

	var created workout.Workout
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/workouts", benchPressWorkout(), &created); status != http.StatusCreated {
		t.Fatalf("create workout: got status %d", status)
	}
	start := map[string]int64{"workoutId": created.ID}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/start", start, nil); status != http.StatusCreated {
		t.Fatalf("start session: got status %d", status)
	}

	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/discard", nil, nil); status != http.StatusNoContent {
		t.Fatalf("discard session: got status %d", status)
	}
	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/session", nil, nil); status != http.StatusNotFound {
		t.Fatalf("get discarded session: got status %d, want 404", status)
	}
	var history []session.Summary
	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/session/history", nil, &history); status != http.StatusOK {
		t.Fatalf("get history: got status %d", status)
	}
	if len(history) != 0 {
		t.Errorf("discarded session wrote %d history entries", len(history))
	}
}

func TestSessionErrors(t *testing.T) {
	t.Parallel()
	server, client := newTestServer(t, "http://exercisedb.invalid")

	start := map[string]int64{"workoutId": 12345}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/start", start, nil); status != http.StatusBadRequest {
		t.Fatalf("start with unknown workout: got status %d, want 400", status)
	}

	logSet := setPayload{GroupID: "single-0", ExerciseID: "42", Completed: true}
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/sets", logSet, nil); status != http.StatusConflict {
		t.Fatalf("log set without session: got status %d, want 409", status)
	}

	var created workout.Workout
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/workouts", benchPressWorkout(), &created); status != http.StatusCreated {
		t.Fatalf("create workout: got status %d", status)
	}
	start["workoutId"] = created.ID
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/start", start, nil); status != http.StatusCreated {
		t.Fatalf("start session: got status %d", status)
	}

	for name, payload := range map[string]setPayload{
		"unknown group":    {GroupID: "nope", ExerciseID: "42"},
		"unknown exercise": {GroupID: "single-0", ExerciseID: "nope"},
		"set out of range": {GroupID: "single-0", SetIndex: 99, ExerciseID: "42"},
	} {
		if status := doJSON(t, client, http.MethodPost, server.URL+"/api/session/sets", payload, nil); status != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", name, status)
		}
	}
}
