package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/search"
	"github.com/lifeonlars/styrkur/internal/storage"
)

const (
	workoutsKey = "workouts"

	// searchThreshold excludes weak fuzzy matches from ranked listings.
	searchThreshold = 0.3
)

// ErrNotFound is returned when a workout or program does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// Repository persists the per-scope workout collection.
type Repository struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all workouts in the scope. A missing or malformed record
// degrades to an empty list; corruption is logged, never surfaced.
func (r *Repository) List(ctx context.Context, scope string) ([]Workout, error) {
	data, found, err := r.store.Get(ctx, scope, workoutsKey)
	if err != nil {
		return nil, fmt.Errorf("get workouts record: %w", err)
	}
	if !found {
		return []Workout{}, nil
	}

	var workouts []Workout
	if err = json.Unmarshal(data, &workouts); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed workouts record, treating as empty",
			slog.String("key", workoutsKey),
			slog.Any("error", err))
		return []Workout{}, nil
	}
	return workouts, nil
}

// Search returns workouts ranked against a free-text query by title, tags and
// exercise names. A blank query returns every workout in stored order.
func (r *Repository) Search(ctx context.Context, scope, query string) ([]Workout, error) {
	workouts, err := r.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	matches := search.Search(workouts, query, search.Config[Workout]{
		Keys: []func(Workout) []string{
			func(w Workout) []string { return []string{w.Title} },
			func(w Workout) []string { return w.Tags },
			func(w Workout) []string { return CalculateMetrics(w).ExerciseNames },
		},
		Threshold: searchThreshold,
	})

	ranked := make([]Workout, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, match.Item)
	}
	return ranked, nil
}

// Get returns the workout with the given ID or ErrNotFound.
func (r *Repository) Get(ctx context.Context, scope string, id int64) (Workout, error) {
	workouts, err := r.List(ctx, scope)
	if err != nil {
		return Workout{}, err
	}
	for _, workout := range workouts {
		if workout.ID == id {
			return workout, nil
		}
	}
	return Workout{}, fmt.Errorf("workout %d: %w", id, ErrNotFound)
}

// Create assigns a time-based identifier, stamps timestamps and appends the
// workout to the collection.
func (r *Repository) Create(ctx context.Context, scope string, workout Workout) (Workout, error) {
	workouts, err := r.List(ctx, scope)
	if err != nil {
		return Workout{}, err
	}

	now := NewTimestamp(r.now())
	workout.ID = uniqueID(now.UnixMilli(), workouts)
	workout.CreatedAt = now
	workout.UpdatedAt = now

	workouts = append(workouts, workout)
	if err = r.save(ctx, scope, workouts); err != nil {
		return Workout{}, err
	}
	return workout, nil
}

// Update applies updateFn to the stored workout and refreshes its update
// timestamp. The identifier and creation timestamp cannot be changed.
func (r *Repository) Update(
	ctx context.Context,
	scope string,
	id int64,
	updateFn func(*Workout) error,
) (Workout, error) {
	workouts, err := r.List(ctx, scope)
	if err != nil {
		return Workout{}, err
	}

	for i := range workouts {
		if workouts[i].ID != id {
			continue
		}
		if err = updateFn(&workouts[i]); err != nil {
			return Workout{}, fmt.Errorf("update workout %d: %w", id, err)
		}
		workouts[i].ID = id
		workouts[i].UpdatedAt = NewTimestamp(r.now())
		if err = r.save(ctx, scope, workouts); err != nil {
			return Workout{}, err
		}
		return workouts[i], nil
	}
	return Workout{}, fmt.Errorf("workout %d: %w", id, ErrNotFound)
}

// Delete removes the workout from the collection or returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, scope string, id int64) error {
	workouts, err := r.List(ctx, scope)
	if err != nil {
		return err
	}

	remaining := make([]Workout, 0, len(workouts))
	for _, workout := range workouts {
		if workout.ID != id {
			remaining = append(remaining, workout)
		}
	}
	if len(remaining) == len(workouts) {
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return r.save(ctx, scope, remaining)
}

func (r *Repository) save(ctx context.Context, scope string, workouts []Workout) error {
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}
	if err = r.store.Set(ctx, scope, workoutsKey, data); err != nil {
		return fmt.Errorf("set workouts record: %w", err)
	}
	return nil
}

// uniqueID bumps a millisecond-based candidate past any collision, which can
// happen when two records are created within the same millisecond.
func uniqueID(candidate int64, workouts []Workout) int64 {
	taken := make(map[int64]bool, len(workouts))
	for _, workout := range workouts {
		taken[workout.ID] = true
	}
	for taken[candidate] {
		candidate++
	}
	return candidate
}
