package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				app.timeout(next))))
		}
		scoped = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				base(app.resolveScope(next)))))
		}
		noScope = func(next http.Handler) http.Handler {
			return app.recoverPanic(base(next))
		}
	)

	mux.Handle("GET /api/workouts", scoped(http.HandlerFunc(app.workoutListGET)))
	mux.Handle("POST /api/workouts", scoped(http.HandlerFunc(app.workoutCreatePOST)))
	mux.Handle("GET /api/workouts/{id}", scoped(http.HandlerFunc(app.workoutGET)))
	mux.Handle("PUT /api/workouts/{id}", scoped(http.HandlerFunc(app.workoutUpdatePUT)))
	mux.Handle("DELETE /api/workouts/{id}", scoped(http.HandlerFunc(app.workoutDELETE)))
	mux.Handle("GET /api/workouts/{id}/metrics", scoped(http.HandlerFunc(app.workoutMetricsGET)))
	mux.Handle("GET /api/workouts/{id}/activation", scoped(http.HandlerFunc(app.workoutActivationGET)))

	mux.Handle("GET /api/programs", scoped(http.HandlerFunc(app.programListGET)))
	mux.Handle("POST /api/programs", scoped(http.HandlerFunc(app.programCreatePOST)))
	mux.Handle("GET /api/programs/{id}", scoped(http.HandlerFunc(app.programGET)))
	mux.Handle("PUT /api/programs/{id}", scoped(http.HandlerFunc(app.programUpdatePUT)))
	mux.Handle("DELETE /api/programs/{id}", scoped(http.HandlerFunc(app.programDELETE)))

	mux.Handle("GET /api/session", scoped(http.HandlerFunc(app.sessionGET)))
	mux.Handle("POST /api/session/start", scoped(http.HandlerFunc(app.sessionStartPOST)))
	mux.Handle("POST /api/session/sets", scoped(http.HandlerFunc(app.sessionSetPOST)))
	mux.Handle("POST /api/session/pause", scoped(http.HandlerFunc(app.sessionPausePOST)))
	mux.Handle("POST /api/session/resume", scoped(http.HandlerFunc(app.sessionResumePOST)))
	mux.Handle("POST /api/session/cancel", scoped(http.HandlerFunc(app.sessionCancelPOST)))
	mux.Handle("POST /api/session/discard", scoped(http.HandlerFunc(app.sessionDiscardPOST)))
	mux.Handle("POST /api/session/complete", scoped(http.HandlerFunc(app.sessionCompletePOST)))
	mux.Handle("GET /api/session/history", scoped(http.HandlerFunc(app.sessionHistoryGET)))

	mux.Handle("GET /api/exercises", scoped(http.HandlerFunc(app.exerciseListGET)))
	mux.Handle("GET /api/exercises/{id}", scoped(http.HandlerFunc(app.exerciseInfoGET)))
	mux.Handle("GET /api/exercises/{id}/activation", scoped(http.HandlerFunc(app.exerciseActivationGET)))

	mux.Handle("GET /api/healthy", noScope(http.HandlerFunc(app.healthy)))

	return mux
}
