package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Rshep3087/finpal/storage"
)

// Keys under which the store persists its values.
const (
	TransactionsKey = "transactions"
	BudgetsKey      = "budgets"
	GoalsKey        = "goals"
	ThemeKey        = "theme"
	OfflineKey      = "isOffline"
)

// Notifier receives the short confirmation shown to the user after a
// mutation, e.g. "Transaction added".
type Notifier func(message string)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand sets the random source used to seed missing collections.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rand = r }
}

// WithNotifier sets the receiver of user-facing confirmations.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// WithIDGenerator replaces the id generator. It is called with the
// entity prefix, "tx" or "goal".
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store holds the user's collections in memory and mirrors every change to
// a storage.Backend.
type Store struct {
	backend storage.Backend
	now     func() time.Time
	rand    *rand.Rand
	notify  Notifier
	newID   func(prefix string) string
	logger  *log.Logger

	// saveMu orders snapshot-and-write pairs so an older snapshot never
	// lands after a newer one.
	saveMu sync.Mutex

	mu           sync.RWMutex
	transactions []Transaction
	budgets      []Budget
	goals        []Goal
	theme        Theme
	offline      bool
}

// NewStore returns an empty store over backend. Call Load before use.
func NewStore(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		notify:  func(string) {},
		newID:   newID,
		logger:  log.Default(),
		theme:   SystemTheme,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}

// Load reads every persisted value. A missing collection is generated and
// saved; a present one is used as is, even when empty.
func (s *Store) Load(ctx context.Context) error {
	var (
		transactions []Transaction
		budgets      []Budget
		goals        []Goal
		theme        = SystemTheme
		offline      bool
		missing      = make(map[string]bool)
		missingMu    sync.Mutex
	)

	markMissing := func(key string) {
		missingMu.Lock()
		missing[key] = true
		missingMu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	load := func(key string, dst any) {
		eg.Go(func() error {
			found, err := s.read(egCtx, key, dst)
			if err != nil {
				return err
			}
			if !found {
				markMissing(key)
			}
			return nil
		})
	}

	load(TransactionsKey, &transactions)
	load(BudgetsKey, &budgets)
	load(GoalsKey, &goals)
	load(ThemeKey, &theme)
	load(OfflineKey, &offline)

	if err := eg.Wait(); err != nil {
		return err
	}

	now := s.now()
	if missing[TransactionsKey] {
		transactions = GenerateTransactions(s.rand, now)
	}
	if missing[BudgetsKey] {
		budgets = GenerateBudgets(s.rand)
	}
	if missing[GoalsKey] {
		goals = GenerateGoals(s.rand, now)
	}
	if !theme.Valid() {
		theme = SystemTheme
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.transactions = transactions
	s.budgets = budgets
	s.goals = goals
	s.theme = theme
	s.offline = offline
	s.mu.Unlock()

	if missing[TransactionsKey] {
		s.save(ctx, TransactionsKey, transactions)
	}
	if missing[BudgetsKey] {
		s.save(ctx, BudgetsKey, budgets)
	}
	if missing[GoalsKey] {
		s.save(ctx, GoalsKey, goals)
	}

	s.logger.Debug("ledger loaded",
		"transactions", len(transactions),
		"budgets", len(budgets),
		"goals", len(goals))

	return nil
}

func (s *Store) read(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// save persists v under key. Callers hold saveMu. Failures are logged; the
// in-memory state remains authoritative. The write outlives cancellation of
// ctx so memory and storage do not drift apart.
func (s *Store) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode value", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(context.WithoutCancel(ctx), key, data); err != nil {
		s.logger.Error("failed to persist value", "key", key, "error", err)
	}
}

// Clear removes every persisted value, preferences included, and reloads,
// which seeds fresh sample collections.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clearing storage: %w", err)
	}

	s.mu.Lock()
	s.transactions = nil
	s.budgets = nil
	s.goals = nil
	s.theme = SystemTheme
	s.offline = false
	s.mu.Unlock()

	return s.Load(ctx)
}

// mutate runs fn under the write lock and persists the snapshot it returns
// under key. Nothing is written when fn reports false.
func (s *Store) mutate(ctx context.Context, key string, fn func() (any, bool)) bool {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snapshot, changed := fn()
	s.mu.Unlock()

	if changed {
		s.save(ctx, key, snapshot)
	}
	return changed
}

// AddTransaction appends t under a fresh id and returns the stored record.
// Any id on t is discarded. The collection is not re-sorted.
func (s *Store) AddTransaction(ctx context.Context, t Transaction) Transaction {
	t.ID = s.newID("tx")
	t.Tags = slices.Clone(t.Tags)

	s.mutate(ctx, TransactionsKey, func() (any, bool) {
		s.transactions = append(s.transactions, t)
		return slices.Clone(s.transactions), true
	})
	s.notify("Transaction added")
	return t
}

// UpdateBudget sets the cap of every budget with the given category id.
// It reports false, writing nothing, when no budget matches.
func (s *Store) UpdateBudget(ctx context.Context, categoryID string, amount float64) bool {
	return s.mutate(ctx, BudgetsKey, func() (any, bool) {
		matched := false
		for i := range s.budgets {
			if s.budgets[i].CategoryID == categoryID {
				s.budgets[i].Amount = amount
				matched = true
			}
		}
		return slices.Clone(s.budgets), matched
	})
}

// AddGoal appends g under a fresh id, stamping CreatedAt with the current
// time, and returns the stored goal.
func (s *Store) AddGoal(ctx context.Context, g Goal) Goal {
	g.ID = s.newID("goal")
	g.CreatedAt = s.now()

	s.mutate(ctx, GoalsKey, func() (any, bool) {
		s.goals = append(s.goals, g)
		return slices.Clone(s.goals), true
	})
	s.notify("Goal added")
	return g
}

// UpdateGoalProgress adds delta, which may be negative, to the goal's
// current amount. It reports false when the goal does not exist.
func (s *Store) UpdateGoalProgress(ctx context.Context, goalID string, delta float64) bool {
	now := s.now()

	return s.mutate(ctx, GoalsKey, func() (any, bool) {
		i := slices.IndexFunc(s.goals, func(g Goal) bool { return g.ID == goalID })
		if i < 0 {
			return nil, false
		}
		s.goals[i].CurrentAmount += delta
		s.goals[i].LastUpdated = &now
		return slices.Clone(s.goals), true
	})
}

// Summary derives the current month's summary from the live collections.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.transactions, s.budgets, s.now())
}

// Now returns the store's notion of the current time.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.transactions))
	for i, t := range s.transactions {
		t.Tags = slices.Clone(t.Tags)
		out[i] = t
	}
	return out
}

func (s *Store) Budgets() []Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.budgets)
}

func (s *Store) Goals() []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.goals)
}

// Goal returns the goal with the given id.
func (s *Store) Goal(id string) (Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme persists the appearance preference. Unknown themes are ignored.
func (s *Store) SetTheme(ctx context.Context, theme Theme) {
	if !theme.Valid() {
		return
	}
	s.mutate(ctx, ThemeKey, func() (any, bool) {
		s.theme = theme
		return theme, true
	})
}

func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

func (s *Store) SetOffline(ctx context.Context, offline bool) {
	s.mutate(ctx, OfflineKey, func() (any, bool) {
		s.offline = offline
		return offline, true
	})
}
