package main

import (
	"net/http"

	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/workout"
)

func (app *application) programListGET(w http.ResponseWriter, r *http.Request) {
	programs, err := app.programs.List(r.Context(), app.scopeID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, programs)
}

func (app *application) programCreatePOST(w http.ResponseWriter, r *http.Request) {
	var payload workout.Program
	if !app.readJSON(w, r, &payload) {
		return
	}
	if payload.Title == "" {
		app.clientError(w, r, http.StatusBadRequest, "title is required")
		return
	}

	created, err := app.programs.Create(r.Context(), app.scopeID(r), payload)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

func (app *application) programGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	found, err := app.programs.Get(r.Context(), app.scopeID(r), id)
	if errors.Is(err, workout.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, found)
}

func (app *application) programUpdatePUT(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}
	var payload workout.Program
	if !app.readJSON(w, r, &payload) {
		return
	}

	updated, err := app.programs.Update(r.Context(), app.scopeID(r), id, func(stored *workout.Program) error {
		stored.Title = payload.Title
		stored.Description = payload.Description
		stored.WorkoutIDs = payload.WorkoutIDs
		stored.Schedule = payload.Schedule
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

func (app *application) programDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	err := app.programs.Delete(r.Context(), app.scopeID(r), id)
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
