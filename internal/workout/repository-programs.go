package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifeonlars/styrkur/internal/storage"
)

const programsKey = "programs"

// ProgramRepository persists the per-scope program collection.
type ProgramRepository struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewProgramRepository(store storage.Store, logger *slog.Logger) *ProgramRepository {
	return &ProgramRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all programs in the scope, degrading malformed records to an
// empty list with a diagnostic.
func (r *ProgramRepository) List(ctx context.Context, scope string) ([]Program, error) {
	data, found, err := r.store.Get(ctx, scope, programsKey)
	if err != nil {
		return nil, fmt.Errorf("get programs record: %w", err)
	}
	if !found {
		return []Program{}, nil
	}

	var programs []Program
	if err = json.Unmarshal(data, &programs); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed programs record, treating as empty",
			slog.String("key", programsKey),
			slog.Any("error", err))
		return []Program{}, nil
	}
	return programs, nil
}

// Get returns the program with the given ID or ErrNotFound.
func (r *ProgramRepository) Get(ctx context.Context, scope string, id int64) (Program, error) {
	programs, err := r.List(ctx, scope)
	if err != nil {
		return Program{}, err
	}
	for _, program := range programs {
		if program.ID == id {
			return program, nil
		}
	}
	return Program{}, fmt.Errorf("program %d: %w", id, ErrNotFound)
}

// Create assigns a time-based identifier, stamps timestamps and appends the
// program to the collection.
func (r *ProgramRepository) Create(ctx context.Context, scope string, program Program) (Program, error) {
	programs, err := r.List(ctx, scope)
	if err != nil {
		return Program{}, err
	}

	now := NewTimestamp(r.now())
	program.ID = uniqueProgramID(now.UnixMilli(), programs)
	program.CreatedAt = now
	program.UpdatedAt = now

	programs = append(programs, program)
	if err = r.save(ctx, scope, programs); err != nil {
		return Program{}, err
	}
	return program, nil
}

// Update applies updateFn to the stored program and refreshes its update
// timestamp.
func (r *ProgramRepository) Update(
	ctx context.Context,
	scope string,
	id int64,
	updateFn func(*Program) error,
) (Program, error) {
	programs, err := r.List(ctx, scope)
	if err != nil {
		return Program{}, err
	}

	for i := range programs {
		if programs[i].ID != id {
			continue
		}
		if err = updateFn(&programs[i]); err != nil {
			return Program{}, fmt.Errorf("update program %d: %w", id, err)
		}
		programs[i].ID = id
		programs[i].UpdatedAt = NewTimestamp(r.now())
		if err = r.save(ctx, scope, programs); err != nil {
			return Program{}, err
		}
		return programs[i], nil
	}
	return Program{}, fmt.Errorf("program %d: %w", id, ErrNotFound)
}

// Delete removes the program from the collection or returns ErrNotFound.
func (r *ProgramRepository) Delete(ctx context.Context, scope string, id int64) error {
	programs, err := r.List(ctx, scope)
	if err != nil {
		return err
	}

	remaining := make([]Program, 0, len(programs))
	for _, program := range programs {
		if program.ID != id {
			remaining = append(remaining, program)
		}
	}
	if len(remaining) == len(programs) {
		return fmt.Errorf("program %d: %w", id, ErrNotFound)
	}
	return r.save(ctx, scope, remaining)
}

func (r *ProgramRepository) save(ctx context.Context, scope string, programs []Program) error {
	data, err := json.Marshal(programs)
	if err != nil {
		return fmt.Errorf("marshal programs: %w", err)
	}
	if err = r.store.Set(ctx, scope, programsKey, data); err != nil {
		return fmt.Errorf("set programs record: %w", err)
	}
	return nil
}

func uniqueProgramID(candidate int64, programs []Program) int64 {
	taken := make(map[int64]bool, len(programs))
	for _, program := range programs {
		taken[program.ID] = true
	}
	for taken[candidate] {
		candidate++
	}
	return candidate
}
