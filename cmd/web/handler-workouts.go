package main

import (
	"net/http"

	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/muscles"
	"github.com/lifeonlars/styrkur/internal/workout"
)

// workoutListGET lists the scope's workouts, ranked against the optional ?q=
// query.
func (app *application) workoutListGET(w http.ResponseWriter, r *http.Request) {
	workouts, err := app.workouts.Search(r.Context(), app.scopeID(r), r.URL.Query().Get("q"))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workouts)
}

func (app *application) workoutCreatePOST(w http.ResponseWriter, r *http.Request) {
	var payload workout.Workout
	if !app.readJSON(w, r, &payload) {
		return
	}
	if payload.Title == "" {
		app.clientError(w, r, http.StatusBadRequest, "title is required")
		return
	}
	sanitizeWorkout(&payload)

	created, err := app.workouts.Create(r.Context(), app.scopeID(r), payload)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	found, err := app.workouts.Get(r.Context(), app.scopeID(r), id)
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, struct {
		workout.Workout
		DescriptionHTML string `json:"descriptionHtml,omitempty"`
	}{
		Workout:         found,
		DescriptionHTML: app.renderMarkdown(r, found.Description),
	})
}

func (app *application) workoutUpdatePUT(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}
	var payload workout.Workout
	if !app.readJSON(w, r, &payload) {
		return
	}
	sanitizeWorkout(&payload)

	updated, err := app.workouts.Update(r.Context(), app.scopeID(r), id, func(stored *workout.Workout) error {
		stored.Title = payload.Title
		stored.Description = payload.Description
		stored.Groups = payload.Groups
		stored.Tags = payload.Tags
		return nil
	})
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, updated)
}

func (app *application) workoutDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	err := app.workouts.Delete(r.Context(), app.scopeID(r), id)
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) workoutMetricsGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	found, err := app.workouts.Get(r.Context(), app.scopeID(r), id)
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout.CalculateMetrics(found))
}

// workoutActivationGET derives the workout's muscle heat map from the muscle
// IDs embedded in its exercise snapshots.
func (app *application) workoutActivationGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	found, err := app.workouts.Get(r.Context(), app.scopeID(r), id)
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var sets []muscles.MuscleSet
	for _, group := range found.Groups {
		for _, cfg := range group.Exercises {
			sets = append(sets, muscles.MuscleSet{
				PrimaryIDs:   cfg.Exercise.PrimaryMuscleIDs,
				SecondaryIDs: cfg.Exercise.SecondaryMuscleIDs,
			})
		}
	}
	app.writeJSON(w, r, http.StatusOK, activationResponse(muscles.Aggregate(sets)))
}

// regionActivation is one region's slice of the heat map.
type regionActivation struct {
	Region    muscles.Region    `json:"region"`
	Intensity muscles.Intensity `json:"intensity"`
	Color     string            `json:"color"`
}

// activationResponse flattens an activation map into a JSON-friendly list.
func activationResponse(activation map[muscles.Region]muscles.Intensity) []regionActivation {
	response := make([]regionActivation, 0, len(activation))
	for region, intensity := range activation {
		response = append(response, regionActivation{
			Region:    region,
			Intensity: intensity,
			Color:     intensity.Color(),
		})
	}
	return response
}
