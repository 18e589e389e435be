package main

import (
	"net/http"

	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/session"
	"github.com/lifeonlars/styrkur/internal/workout"
)

var (
	errUnknownGroup    = errors.NewSentinel("unknown group")
	errUnknownExercise = errors.NewSentinel("unknown exercise")
	errSetOutOfRange   = errors.NewSentinel("set index out of range")
)

// sessionGET returns the session the UI should show, active or paused.
func (app *application) sessionGET(w http.ResponseWriter, r *http.Request) {
	state, found, err := app.sessions.Current(r.Context(), app.scopeID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !found {
		app.notFound(w, r)
		return
	}
	app.writeJSON(w, r, http.StatusOK, state)
}

func (app *application) sessionStartPOST(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		WorkoutID int64 `json:"workoutId"`
	}
	if !app.readJSON(w, r, &payload) {
		return
	}

	scope := app.scopeID(r)
	found, err := app.workouts.Get(r.Context(), scope, payload.WorkoutID)
	if errors.Is(err, workout.ErrNotFound) {
		app.clientError(w, r, http.StatusBadRequest, "unknown workout")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	state, err := app.sessions.Start(r.Context(), scope, found)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, state)
}

// sessionSetPOST records one set entry in the active session.
func (app *application) sessionSetPOST(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		GroupID    string  `json:"groupId"`
		SetIndex   int     `json:"setIndex"`
		ExerciseID string  `json:"exerciseId"`
		Reps       float64 `json:"reps"`
		WeightKg   float64 `json:"weightKg"`
		Completed  bool    `json:"completed"`
	}
	if !app.readJSON(w, r, &payload) {
		return
	}

	state, err := app.sessions.Update(r.Context(), app.scopeID(r), func(state *session.State) error {
		groupLog, ok := state.GroupLogs[payload.GroupID]
		if !ok {
			return errUnknownGroup
		}
		if payload.SetIndex < 0 || payload.SetIndex >= len(groupLog.Sets) {
			return errSetOutOfRange
		}
		if _, ok = groupLog.Sets[payload.SetIndex].Entries[payload.ExerciseID]; !ok {
			return errUnknownExercise
		}
		groupLog.Sets[payload.SetIndex].Entries[payload.ExerciseID] = session.ExerciseEntry{
			Reps:      sanitizeCount(payload.Reps, 0),
			WeightKg:  sanitizeWeight(payload.WeightKg),
			Completed: payload.Completed,
		}
		return nil
	})
	switch {
	case errors.Is(err, session.ErrNoSession):
		app.clientError(w, r, http.StatusConflict, "no active session")
	case errors.Is(err, errUnknownGroup), errors.Is(err, errUnknownExercise), errors.Is(err, errSetOutOfRange):
		app.clientError(w, r, http.StatusBadRequest, err.Error())
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusOK, state)
	}
}

func (app *application) sessionPausePOST(w http.ResponseWriter, r *http.Request) {
	state, err := app.sessions.Pause(r.Context(), app.scopeID(r))
	if errors.Is(err, session.ErrNoSession) {
		app.clientError(w, r, http.StatusConflict, "no active session")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, state)
}

func (app *application) sessionResumePOST(w http.ResponseWriter, r *http.Request) {
	state, err := app.sessions.Resume(r.Context(), app.scopeID(r))
	if errors.Is(err, session.ErrNoSession) {
		app.clientError(w, r, http.StatusConflict, "no paused session")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, state)
}

func (app *application) sessionCancelPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Cancel(r.Context(), app.scopeID(r)); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sessionDiscardPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Discard(r.Context(), app.scopeID(r)); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sessionCompletePOST(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Notes string `json:"notes"`
	}
	if !app.readJSON(w, r, &payload) {
		return
	}

	summary, err := app.sessions.Complete(r.Context(), app.scopeID(r), payload.Notes)
	if errors.Is(err, session.ErrNoSession) {
		app.clientError(w, r, http.StatusConflict, "no active session")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, summary)
}

func (app *application) sessionHistoryGET(w http.ResponseWriter, r *http.Request) {
	summaries, err := app.sessions.History(r.Context(), app.scopeID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, summaries)
}
