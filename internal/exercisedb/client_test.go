package exercisedb_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lifeonlars/styrkur/internal/exercisedb"
	"github.com/lifeonlars/styrkur/internal/testhelpers"
	"github.com/lifeonlars/styrkur/internal/workout"
)

func TestFetchExercises(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/exercises" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"id": 42, "name": "Bench Press", "muscles": [4], "muscles_secondary": [5], "equipment": "barbell", "category": "push"},
			{"id": 43, "name": "Push Up", "muscles": [4], "muscles_secondary": [5, 6]}
		]}`))
	}))
	t.Cleanup(server.Close)

	client := exercisedb.NewClient(server.URL, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	got, err := client.FetchExercises(t.Context(), exercisedb.Filter{Term: "bench", MuscleID: 4, Limit: 10})
	if err != nil {
		t.Fatalf("FetchExercises: %v", err)
	}

	want := []workout.Exercise{
		{
			ID:                 "42",
			Name:               "Bench Press",
			Equipment:          "barbell",
			Category:           "push",
			PrimaryMuscleIDs:   []int{4},
			SecondaryMuscleIDs: []int{5},
		},
		{
			ID:                 "43",
			Name:               "Push Up",
			PrimaryMuscleIDs:   []int{4},
			SecondaryMuscleIDs: []int{5, 6},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FetchExercises() mismatch (-want +got):\n%s", diff)
	}
	if gotQuery != "limit=10&muscle=4&term=bench" {
		t.Errorf("query = %q, want limit, muscle and term parameters", gotQuery)
	}
}

func TestFetchExerciseInfoSanitizesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/exercises/42" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 42,
			"name": "Bench Press",
			"description": "<p>Lie on the <strong>bench</strong>.</p><p>Press  up.</p>",
			"muscles": [4],
			"muscles_secondary": [5]
		}`))
	}))
	t.Cleanup(server.Close)

	client := exercisedb.NewClient(server.URL, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	got, err := client.FetchExerciseInfo(t.Context(), "42")
	if err != nil {
		t.Fatalf("FetchExerciseInfo: %v", err)
	}

	if got.Exercise.Name != "Bench Press" {
		t.Errorf("Name = %q, want Bench Press", got.Exercise.Name)
	}
	if want := "Lie on the bench.Press up."; got.Description != want {
		t.Errorf("Description = %q, want %q", got.Description, want)
	}
}

func TestFetchExercisesFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := exercisedb.NewClient(server.URL, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	if _, err := client.FetchExercises(t.Context(), exercisedb.Filter{}); err == nil {
		t.Error("expected provider failure to surface as an error")
	}
}

func TestFetchExerciseDetailsPreservesOrder(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		id := r.URL.Path[len("/exercises/"):]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": ` + id + `, "name": "Exercise ` + id + `"}`))
	}))
	t.Cleanup(server.Close)

	client := exercisedb.NewClient(server.URL, testhelpers.NewLogger(testhelpers.NewWriter(t)))

	details, err := client.FetchExerciseDetails(t.Context(), []string{"3", "1", "2"})
	if err != nil {
		t.Fatalf("FetchExerciseDetails: %v", err)
	}

	if len(details) != 3 {
		t.Fatalf("got %d details, want 3", len(details))
	}
	for i, wantID := range []string{"3", "1", "2"} {
		if details[i].Exercise.ID != wantID {
			t.Errorf("details[%d].ID = %s, want %s", i, details[i].Exercise.ID, wantID)
		}
	}
	if requests.Load() != 3 {
		t.Errorf("made %d requests, want 3", requests.Load())
	}
}
