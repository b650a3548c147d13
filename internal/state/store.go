// Package state owns the application document. Every change goes through
// Store.Dispatch, which applies one command to a copy of the current
// snapshot, refreshes derived fields, validates and persists the result.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/habitual/internal/engine"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrMediaNotFound   = errors.New("media item not found")
	ErrBlockNotFound   = errors.New("schedule block not found")
	ErrWrongHabitKind  = errors.New("command does not apply to this habit kind")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Persister is the slice of a storage provider the store needs.
type Persister interface {
	LoadState() ([]byte, error)
	SaveState([]byte) error
}

// Env is what a command may read besides the state it edits.
type Env struct {
	Now   time.Time
	NewID func() string
}

// Command is one state transition.
type Command interface {
	Apply(st *models.AppState, env Env) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// WithIDs replaces the ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

type Store struct {
	mu        sync.RWMutex
	persister Persister
	state     models.AppState
	clock     func() time.Time
	newID     func() string
	validator *validation.Validator
	seeded    bool
}

func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		clock:     time.Now,
		newID:     NewID,
		validator: validation.New(),
		state:     models.AppState{},
	}
	models.Normalize(&s.state)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored document. A missing or unreadable document is
// replaced by the default dataset; only storage errors are returned.
func (s *Store) Load() error {
	data, err := s.persister.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if data == nil {
		logger.Info("No stored state, starting from the default dataset")
		s.state = Seed(now)
		s.seeded = true
	} else {
		local := utils.NowFromSettings(models.DefaultSettings(), now)
		st, err := models.DecodeState(data, utils.DayKey(local), local.Location())
		if err != nil {
			logger.Warn("Stored state could not be parsed, using the default dataset", "error", err)
			st = Seed(now)
			s.seeded = true
		}
		s.state = st
	}

	refreshStreaks(&s.state, s.nowIn(s.state.Settings))
	return nil
}

// Seeded reports whether Load fell back to the default dataset.
func (s *Store) Seeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded
}

// State returns a copy of the current snapshot.
func (s *Store) State() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Now is the current time in the configured timezone.
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowIn(s.state.Settings)
}

// Today is the effective day key, honouring the day end time.
func (s *Store) Today() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.EffectiveTodayKey(s.nowIn(s.state.Settings), s.state.Settings.DayEndTime)
}

func (s *Store) nowIn(settings models.Settings) time.Time {
	return utils.NowFromSettings(settings, s.clock())
}

// Dispatch applies cmd and persists the new snapshot. On any error the
// previous snapshot stays current and is returned.
func (s *Store) Dispatch(cmd Command) (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := Env{Now: s.nowIn(s.state.Settings), NewID: s.newID}
	next := s.state.Clone()
	if err := cmd.Apply(&next, env); err != nil {
		return s.state.Clone(), err
	}

	refreshStreaks(&next, s.nowIn(next.Settings))

	before := s.validator.ValidateState(s.state)
	after := s.validator.ValidateState(next)
	if introduced := after.Introduced(before); len(introduced) > 0 {
		return s.state.Clone(), fmt.Errorf("%w: %s", ErrInvalidArgument, introduced[0].Description)
	}

	if err := s.save(next); err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	s.seeded = false
	logger.Debug("State updated", "command", fmt.Sprintf("%T", cmd))
	return next.Clone(), nil
}

// Save writes the current snapshot, e.g. right after seeding.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(s.state)
}

func (s *Store) save(st models.AppState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.persister.SaveState(data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func refreshStreaks(st *models.AppState, now time.Time) {
	for i := range st.Habits {
		st.Habits[i].Streak = engine.CurrentStreak(st.Habits[i], now, st.Settings.DayEndTime)
	}
}
