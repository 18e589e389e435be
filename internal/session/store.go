package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/storage"
	"github.com/lifeonlars/styrkur/internal/workout"
)

const (
	activeKey  = "active_session"
	pausedKey  = "paused_session"
	historyKey = "session_history"

	// historyLimit bounds the summary history, oldest evicted first.
	historyLimit = 100
)

// ErrNoSession is returned by operations that need a session in a slot that
// turns out to be empty.
var ErrNoSession = errors.NewSentinel("no session")

// Store runs the session state machine over the storage port.
type Store struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(store storage.Store, logger *slog.Logger) *Store {
	return &Store{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Start snapshots the workout into a fresh active session, overwriting any
// session already in the active slot. A paused session is left untouched; it
// stays available for an explicit resume or cancel.
func (s *Store) Start(ctx context.Context, scope string, w workout.Workout) (State, error) {
	state := newState(w, workout.NewTimestamp(s.now()))
	if err := s.Save(ctx, scope, state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Save writes the state into the active slot.
func (s *Store) Save(ctx context.Context, scope string, state State) error {
	return s.saveSlot(ctx, scope, activeKey, state)
}

// Load returns the active session. Malformed payloads degrade to absent.
func (s *Store) Load(ctx context.Context, scope string) (State, bool, error) {
	return s.loadSlot(ctx, scope, activeKey)
}

// LoadPaused returns the paused session. Malformed payloads degrade to
// absent.
func (s *Store) LoadPaused(ctx context.Context, scope string) (State, bool, error) {
	return s.loadSlot(ctx, scope, pausedKey)
}

// Current returns the session the UI should show. When a crash between the
// two pause writes leaves both slots populated the active one wins, since
// the paused copy is the staler of the two.
func (s *Store) Current(ctx context.Context, scope string) (State, bool, error) {
	state, found, err := s.Load(ctx, scope)
	if err != nil || found {
		return state, found, err
	}
	return s.LoadPaused(ctx, scope)
}

// Update applies updateFn to the active session and saves the result.
func (s *Store) Update(ctx context.Context, scope string, updateFn func(*State) error) (State, error) {
	state, found, err := s.Load(ctx, scope)
	if err != nil {
		return State{}, err
	}
	if !found {
		return State{}, fmt.Errorf("update active session: %w", ErrNoSession)
	}
	if err = updateFn(&state); err != nil {
		return State{}, fmt.Errorf("update active session: %w", err)
	}
	if err = s.Save(ctx, scope, state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Pause stamps the active session and moves it to the paused slot. The
// paused copy is written before the active slot is cleared so a crash in
// between loses nothing.
func (s *Store) Pause(ctx context.Context, scope string) (State, error) {
	state, found, err := s.Load(ctx, scope)
	if err != nil {
		return State{}, err
	}
	if !found {
		return State{}, fmt.Errorf("pause: %w", ErrNoSession)
	}

	pausedAt := workout.NewTimestamp(s.now())
	state.PausedAt = &pausedAt
	if err = s.saveSlot(ctx, scope, pausedKey, state); err != nil {
		return State{}, err
	}
	if err = s.store.Remove(ctx, scope, activeKey); err != nil {
		return State{}, fmt.Errorf("clear active slot: %w", err)
	}
	return state, nil
}

// Resume moves the paused session back to the active slot, stripping the
// pause marker. The active copy is written before the paused slot is
// cleared.
func (s *Store) Resume(ctx context.Context, scope string) (State, error) {
	state, found, err := s.LoadPaused(ctx, scope)
	if err != nil {
		return State{}, err
	}
	if !found {
		return State{}, fmt.Errorf("resume: %w", ErrNoSession)
	}

	state.PausedAt = nil
	if err = s.saveSlot(ctx, scope, activeKey, state); err != nil {
		return State{}, err
	}
	if err = s.store.Remove(ctx, scope, pausedKey); err != nil {
		return State{}, fmt.Errorf("clear paused slot: %w", err)
	}
	return state, nil
}

// Cancel discards the paused session without writing history.
func (s *Store) Cancel(ctx context.Context, scope string) error {
	if err := s.store.Remove(ctx, scope, pausedKey); err != nil {
		return fmt.Errorf("clear paused slot: %w", err)
	}
	return nil
}

// Discard drops the active session without writing history.
func (s *Store) Discard(ctx context.Context, scope string) error {
	if err := s.store.Remove(ctx, scope, activeKey); err != nil {
		return fmt.Errorf("clear active slot: %w", err)
	}
	return nil
}

// Complete ends the active session, pushes its summary onto the history and
// clears the active slot. The summary is written before the slot is cleared.
func (s *Store) Complete(ctx context.Context, scope, notes string) (Summary, error) {
	state, found, err := s.Load(ctx, scope)
	if err != nil {
		return Summary{}, err
	}
	if !found {
		return Summary{}, fmt.Errorf("complete: %w", ErrNoSession)
	}

	endedAt := workout.NewTimestamp(s.now())
	state.EndedAt = &endedAt
	summary := newSummary(state, notes)

	if err = s.pushHistory(ctx, scope, summary); err != nil {
		return Summary{}, err
	}
	if err = s.store.Remove(ctx, scope, activeKey); err != nil {
		return Summary{}, fmt.Errorf("clear active slot: %w", err)
	}
	return summary, nil
}

// History returns past summaries, most recent first. Malformed history
// degrades to empty.
func (s *Store) History(ctx context.Context, scope string) ([]Summary, error) {
	data, found, err := s.store.Get(ctx, scope, historyKey)
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}
	if !found {
		return []Summary{}, nil
	}

	var summaries []Summary
	if err = json.Unmarshal(data, &summaries); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "malformed session history, treating as empty",
			slog.String("key", historyKey),
			slog.Any("error", err))
		return []Summary{}, nil
	}
	return summaries, nil
}

func (s *Store) pushHistory(ctx context.Context, scope string, summary Summary) error {
	summaries, err := s.History(ctx, scope)
	if err != nil {
		return err
	}

	summaries = append([]Summary{summary}, summaries...)
	if len(summaries) > historyLimit {
		summaries = summaries[:historyLimit]
	}

	data, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("marshal session history: %w", err)
	}
	if err = s.store.Set(ctx, scope, historyKey, data); err != nil {
		return fmt.Errorf("set session history: %w", err)
	}
	return nil
}

func (s *Store) saveSlot(ctx context.Context, scope, key string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err = s.store.Set(ctx, scope, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) loadSlot(ctx context.Context, scope, key string) (State, bool, error) {
	data, found, err := s.store.Get(ctx, scope, key)
	if err != nil {
		return State{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return State{}, false, nil
	}

	var state State
	if err = json.Unmarshal(data, &state); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "malformed session state, treating as absent",
			slog.String("key", key),
			slog.Any("error", err))
		return State{}, false, nil
	}
	return state, true, nil
}
