package main

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lifeonlars/styrkur/internal/workout"
)

func TestProgramCRUD(t *testing.T) {
	t.Parallel()
	server, client := newTestServer(t, "http://exercisedb.invalid")

	payload := workout.Program{
		Title:      "Strength Block",
		WorkoutIDs: []int64{1, 2, 3},
		Schedule:   "mon/wed/fri",
	}
	var created workout.Program
	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/programs", payload, &created); status != http.StatusCreated {
		t.Fatalf("create program: got status %d", status)
	}
	if created.ID == 0 {
		t.Fatal("created program has no ID")
	}

	var listed []workout.Program
	if status := doJSON(t, client, http.MethodGet, server.URL+"/api/programs", nil, &listed); status != http.StatusOK {
		t.Fatalf("list programs: got status %d", status)
	}
	if diff := cmp.Diff([]workout.Program{created}, listed); diff != "" {
		t.Errorf("listed programs mismatch (-want +got):\n%s", diff)
	}

	url := server.URL + "/api/programs/" + itoa(created.ID)
	update := payload
	update.Title = "Hypertrophy Block"
	update.WorkoutIDs = []int64{1, 2}
	var updated workout.Program
	if status := doJSON(t, client, http.MethodPut, url, update, &updated); status != http.StatusOK {
		t.Fatalf("update program: got status %d", status)
	}
	if updated.Title != "Hypertrophy Block" || len(updated.WorkoutIDs) != 2 {
		t.Errorf("got program %+v after update", updated)
	}

	if status := doJSON(t, client, http.MethodDelete, url, nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete program: got status %d", status)
	}
	if status := doJSON(t, client, http.MethodGet, url, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get deleted program: got status %d, want 404", status)
	}
}

func TestProgramCreateRequiresTitle(t *testing.T) {
	t.Parallel()
	server, client := newTestServer(t, "http://exercisedb.invalid")

	if status := doJSON(t, client, http.MethodPost, server.URL+"/api/programs", workout.Program{}, nil); status != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", status)
	}
}
