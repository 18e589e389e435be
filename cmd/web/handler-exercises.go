package main

import (
	"net/http"
	"strconv"

	"github.com/lifeonlars/styrkur/internal/exercisedb"
	"github.com/lifeonlars/styrkur/internal/muscles"
)

// defaultExerciseLimit caps unfiltered listings against the provider.
const defaultExerciseLimit = 50

func (app *application) exerciseListGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := exercisedb.Filter{
		Term:      query.Get("term"),
		Equipment: query.Get("equipment"),
		Limit:     defaultExerciseLimit,
	}
	if muscle := query.Get("muscle"); muscle != "" {
		id, err := strconv.Atoi(muscle)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest, "muscle must be an integer")
			return
		}
		filter.MuscleID = id
	}
	if limit := query.Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			app.clientError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = parsed
	}

	exercises, err := app.exerciseDB.FetchExercises(r.Context(), filter)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	detail, err := app.exerciseDB.FetchExerciseInfo(r.Context(), r.PathValue("id"))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, detail)
}

// exerciseActivationGET grades the regions one exercise works.
func (app *application) exerciseActivationGET(w http.ResponseWriter, r *http.Request) {
	detail, err := app.exerciseDB.FetchExerciseInfo(r.Context(), r.PathValue("id"))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	activation := muscles.ActivationForExercise(
		detail.Exercise.PrimaryMuscleIDs, detail.Exercise.SecondaryMuscleIDs)
	app.writeJSON(w, r, http.StatusOK, activationResponse(activation))
}
