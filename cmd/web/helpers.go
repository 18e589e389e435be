package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/lifeonlars/styrkur/internal/contexthelpers"
	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/workout"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError,
		map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, map[string]string{"error": message})
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound, "not found")
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "marshal response", errors.SlogError(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// readJSON decodes the request body into dst. A false return means the 400
// has already been sent.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

// scopeID returns the browser-storage scope resolved by middleware.
func (app *application) scopeID(r *http.Request) string {
	return contexthelpers.ScopeID(r.Context())
}

// parseIDParam parses the numeric "id" path parameter. On failure the 404 has
// already been sent.
func (app *application) parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.notFound(w, r)
		return 0, false
	}
	return id, true
}

// renderMarkdown converts markdown to HTML, degrading to empty on failure.
func (app *application) renderMarkdown(r *http.Request, markdown string) string {
	var buf bytes.Buffer
	if err := app.markdown.Convert([]byte(markdown), &buf); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "render markdown", errors.SlogError(err))
		return ""
	}
	return buf.String()
}

// sanitizeCount clamps a count to at least minimum, shielding arithmetic from
// NaN and nonsense negatives that may arrive in request payloads.
func sanitizeCount(value float64, minimum int) int {
	if math.IsNaN(value) || value < float64(minimum) {
		return minimum
	}
	return int(value)
}

// sanitizeWeight clamps a weight to a non-negative number.
func sanitizeWeight(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	return value
}

// sanitizeWorkout clamps every numeric training parameter in place.
func sanitizeWorkout(w *workout.Workout) {
	for gi := range w.Groups {
		group := &w.Groups[gi]
		if group.Kind != workout.KindSingle && group.Rounds < 1 {
			group.Rounds = 1
		}
		for ei := range group.Exercises {
			cfg := &group.Exercises[ei]
			cfg.Sets = sanitizeCount(float64(cfg.Sets), 1)
			cfg.Reps = sanitizeCount(float64(cfg.Reps), 1)
			cfg.WeightKg = sanitizeWeight(cfg.WeightKg)
			if cfg.RestSeconds < 0 {
				cfg.RestSeconds = 0
			}
			if cfg.RPE != nil {
				clamped := min(max(*cfg.RPE, 0), 10)
				cfg.RPE = &clamped
			}
		}
	}
}
