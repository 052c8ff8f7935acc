package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/game/session"
	"github.com/udisondev/wavecrawl/internal/ids"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/replay"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// Store persists sessions while they are played. *db.SessionRepository
// satisfies it.
type Store interface {
	Save(ctx context.Context, s *model.Session) error
	AppendEvents(ctx context.Context, id model.SessionID, turn int32, events []model.BattleEvent) error
}

// Spec describes one session to play.
type Spec struct {
	ID       model.SessionID
	PlayerID model.PlayerID
	Name     string
	Class    string
	Seed     uint64
}

// Result is the outcome of one played session.
type Result struct {
	Spec    Spec
	Session *model.Session
	// Turns counts AdvanceTurn calls, spawn-only turns included.
	Turns  int
	Events int
	Digest replay.Digest
	// Truncated is set when the turn limit stopped an active session.
	Truncated bool
	// Sold is the gold received for loot sold by the autopilot.
	Sold model.Gold
}

// Runner plays sessions concurrently. Each session gets its own engine,
// id sequence and rng, so a result depends only on its Spec.
type Runner struct {
	catalog  *model.Catalog
	rates    *config.Rates
	store    Store
	workers  int
	maxTurns  int
	autoEquip bool
	autoSell  bool
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithStore persists every turn through store.
func WithStore(store Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithWorkers limits how many sessions run at once.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = max(n, 1) }
}

// WithMaxTurns caps the turns played per session.
func WithMaxTurns(n int) Option {
	return func(r *Runner) { r.maxTurns = max(n, 1) }
}

// WithAutoEquip lets the autopilot equip dropped upgrades.
func WithAutoEquip(on bool) Option {
	return func(r *Runner) { r.autoEquip = on }
}

// WithAutoSell lets the autopilot sell the loot it does not wear.
func WithAutoSell(on bool) Option {
	return func(r *Runner) { r.autoSell = on }
}

// WithClock overrides the clock used for session start times.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner over catalog with reward rates.
func NewRunner(catalog *model.Catalog, rates *config.Rates, opts ...Option) *Runner {
	r := &Runner{
		catalog:  catalog,
		rates:    rates,
		workers:  1,
		maxTurns: 500,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays every spec and returns results in spec order. The first
// failing session cancels the rest.
func (r *Runner) Run(ctx context.Context, specs []Spec) ([]Result, error) {
	results := make([]Result, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, spec := range specs {
		g.Go(func() error {
			res, err := r.play(ctx, spec)
			if err != nil {
				return fmt.Errorf("session %s: %w", spec.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// play runs one session until it completes or hits the turn limit.
func (r *Runner) play(ctx context.Context, spec Spec) (Result, error) {
	engine := session.NewEngine(r.catalog, ids.NewSequence(string(spec.ID)), r.rates)
	pilot := NewAutopilot(engine)
	src := rng.New(spec.Seed)
	rec := replay.NewRecorder()

	s, err := engine.NewSession(spec.ID, spec.PlayerID, spec.Name, spec.Class, r.now().UTC().Format(time.RFC3339))
	if err != nil {
		return Result{}, err
	}
	if err := r.persist(ctx, s, nil); err != nil {
		return Result{}, err
	}

	turns := 0
	var sold model.Gold
	for s.IsActive() && turns < r.maxTurns {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		next, events, err := engine.AdvanceTurn(s, pilot.Choose(s), src)
		if err != nil {
			return Result{}, err
		}
		if _, dropped := model.FindEvent(events, model.EventItemDropped); dropped {
			if r.autoEquip {
				next = pilot.Upgrade(next)
			}
			if r.autoSell {
				var gold model.Gold
				next, gold = pilot.SellLoot(next)
				sold += gold
			}
		}
		if err := rec.Record(next.Turn, events); err != nil {
			return Result{}, err
		}
		if err := r.persist(ctx, next, events); err != nil {
			return Result{}, err
		}
		s = next
		turns++
	}

	res := Result{
		Spec:      spec,
		Session:   s,
		Turns:     turns,
		Events:    rec.Events(),
		Digest:    rec.Sum(),
		Truncated: s.IsActive(),
		Sold:      sold,
	}
	slog.Debug("session finished",
		"session", spec.ID,
		"class", spec.Class,
		"turns", turns,
		"waves", s.Wave,
		"level", s.Player.Level,
		"sold", sold,
		"state", s.State,
		"digest", res.Digest)

	return res, nil
}

func (r *Runner) persist(ctx context.Context, s *model.Session, events []model.BattleEvent) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save turn %d: %w", s.Turn, err)
	}
	if err := r.store.AppendEvents(ctx, s.ID, s.Turn, events); err != nil {
		return fmt.Errorf("append events of turn %d: %w", s.Turn, err)
	}
	return nil
}

// ErrNoSessions is returned by Plan when nothing is requested.
var ErrNoSessions = errors.New("no sessions requested")

// Plan builds the specs of a simulation batch. Ids come from gen. With a
// fixed seed session i plays with seed+i; otherwise each gets a random seed.
func Plan(cfg config.Simulation, gen ids.UUID) ([]Spec, error) {
	if cfg.Sessions <= 0 {
		return nil, ErrNoSessions
	}

	specs := make([]Spec, cfg.Sessions)
	for i := range specs {
		seed := cfg.Seed + uint64(i)
		if cfg.Seed == 0 {
			var err error
			if seed, err = rng.NewSeed(); err != nil {
				return nil, err
			}
		}
		specs[i] = Spec{
			ID:       gen.NewSessionID(),
			PlayerID: gen.NewPlayerID(),
			Name:     fmt.Sprintf("%s #%d", cfg.PlayerName, i+1),
			Class:    cfg.Class,
			Seed:     seed,
		}
	}
	return specs, nil
}
