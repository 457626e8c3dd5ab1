// Package broker holds the wizard sessions served over the API, publishes
// their lifecycle events and expires idle ones.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/hermes"
	"github.com/MikeSquared-Agency/Advisor/internal/metrics"
	"github.com/MikeSquared-Agency/Advisor/internal/recommend"
	"github.com/MikeSquared-Agency/Advisor/internal/wizard"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
)

// Sources reported in RecommendationServedEvent.
const (
	SourceSession   = "session"
	SourceStateless = "api"
)

// Loader produces a fresh catalog, e.g. from the configured source.
type Loader func(ctx context.Context) (*catalog.Catalog, error)

// Options tune the broker.
type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	CatalogSource string
}

// Snapshot is the externally visible state of one session.
type Snapshot struct {
	ID        string            `json:"id"`
	State     wizard.State      `json:"state"`
	Question  string            `json:"question,omitempty"`
	Options   []string          `json:"options,omitempty"`
	Applied   []string          `json:"applied"`
	Accepted  *bool             `json:"accepted,omitempty"`
	Result    *recommend.Result `json:"result,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type entry struct {
	session   *wizard.Session
	updatedAt time.Time
}

type Broker struct {
	rec    *recommend.Recommender
	hermes hermes.Client
	loader Loader
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(rec *recommend.Recommender, h hermes.Client, opts Options, logger *slog.Logger) *Broker {
	return &Broker{
		rec:      rec,
		hermes:   h,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*entry),
		stopCh:   make(chan struct{}),
	}
}

// SetLoader enables catalog reloads requested over hermes.
func (b *Broker) SetLoader(l Loader) { b.loader = l }

// Recommender is the pipeline sessions are answered with.
func (b *Broker) Recommender() *recommend.Recommender { return b.rec }

func (b *Broker) Start(ctx context.Context) {
	if b.opts.TTL <= 0 || b.opts.SweepInterval <= 0 {
		return
	}
	b.wg.Add(1)
	go b.expiryLoop(ctx)
}

func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

// Len is the number of sessions held.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}

// Create registers a new session on the intro screen.
func (b *Broker) Create() (Snapshot, error) {
	b.mu.Lock()
	if b.opts.MaxSessions > 0 && len(b.sessions) >= b.opts.MaxSessions {
		b.mu.Unlock()
		return Snapshot{}, ErrTooManySessions
	}
	id := uuid.NewString()
	e := &entry{session: wizard.NewSession(), updatedAt: b.now()}
	b.sessions[id] = e
	n := len(b.sessions)
	snap := b.snapshot(id, e)
	b.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	b.logger.Info("session created", "session_id", id)
	return snap, nil
}

func (b *Broker) Get(id string) (Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return b.snapshot(id, e), nil
}

// Delete drops a session.
func (b *Broker) Delete(id string) error {
	b.mu.Lock()
	_, ok := b.sessions[id]
	delete(b.sessions, id)
	n := len(b.sessions)
	b.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	metrics.ActiveSessions.Set(float64(n))
	return nil
}

// Begin leaves the intro screen.
func (b *Broker) Begin(id string) (Snapshot, error) {
	snap, err := b.mutate(id, func(s *wizard.Session) error { return s.Start() })
	if err != nil {
		return Snapshot{}, err
	}
	b.publish(hermes.SubjectSessionStarted(id), hermes.SessionStartedEvent{SessionID: id, Timestamp: b.now()})
	return snap, nil
}

// Answer applies one answer. Fuel and brand answers given as a list number
// or an equivalent name resolve to the catalog's display form. Reaching the
// results screen attaches the recommendation result.
func (b *Broker) Answer(id string, a wizard.Answer) (Snapshot, error) {
	var accepted bool
	snap, err := b.mutate(id, func(s *wizard.Session) error {
		switch s.State() {
		case wizard.StateFuel:
			a.Value = b.resolveOption(b.rec.Catalog().FuelTypes(), a.Value)
		case wizard.StateBrand:
			a.Value = b.resolveOption(b.rec.Catalog().Brands(), a.Value)
		}
		var err error
		accepted, err = s.Apply(a)
		return err
	})
	if err != nil {
		return Snapshot{}, err
	}
	snap.Accepted = &accepted

	if snap.State == wizard.StateResults {
		res := b.recommendFor(id)
		snap.Result = &res
	}
	return snap, nil
}

// Restart goes from results back to the intro with fresh criteria.
func (b *Broker) Restart(id string) (Snapshot, error) {
	snap, err := b.mutate(id, func(s *wizard.Session) error { return s.Restart() })
	if err != nil {
		return Snapshot{}, err
	}
	b.publish(hermes.SubjectSessionRestarted(id), hermes.SessionRestartedEvent{SessionID: id, Timestamp: b.now()})
	return snap, nil
}

// Recommend serves a stateless request and publishes it like a session result.
func (b *Broker) Recommend(c catalog.Criteria, limit int) recommend.Result {
	res := b.rec.RecommendN(c, limit)
	b.publishServed(uuid.NewString(), "", SourceStateless, res)
	return res
}

func (b *Broker) recommendFor(id string) recommend.Result {
	b.mu.RLock()
	e, ok := b.sessions[id]
	var c catalog.Criteria
	if ok {
		c = e.session.Criteria()
	}
	b.mu.RUnlock()

	res := b.rec.Recommend(c)
	b.publishServed(uuid.NewString(), id, SourceSession, res)
	return res
}

func (b *Broker) mutate(id string, fn func(*wizard.Session) error) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	if err := fn(e.session); err != nil {
		return Snapshot{}, err
	}
	e.updatedAt = b.now()
	return b.snapshot(id, e), nil
}

// snapshot must be called with b.mu held.
func (b *Broker) snapshot(id string, e *entry) Snapshot {
	st := e.session.State()
	snap := Snapshot{
		ID:        id,
		State:     st,
		Question:  st.Question(),
		Applied:   e.session.Criteria().Summary(),
		UpdatedAt: e.updatedAt,
	}
	switch st {
	case wizard.StateFuel:
		snap.Options = b.rec.Catalog().FuelTypes()
	case wizard.StateBrand:
		snap.Options = b.rec.Catalog().Brands()
	}
	return snap
}

func (b *Broker) resolveOption(options []string, value string) string {
	if o, ok := wizard.MatchOption(options, value); ok {
		return o
	}
	return value
}

func (b *Broker) publishServed(requestID, sessionID, source string, res recommend.Result) {
	ev := hermes.RecommendationServedEvent{
		RequestID: requestID,
		SessionID: sessionID,
		Source:    source,
		Applied:   res.Applied,
		Total:     res.Total,
		Returned:  len(res.Recommendations),
		Timestamp: b.now(),
	}
	if len(res.Recommendations) > 0 {
		top := res.Recommendations[0]
		ev.TopVehicle = top.Vehicle.DisplayName()
		ev.TopScore = top.TotalScore
	}
	b.publish(hermes.SubjectRecommendationServed(requestID), ev)
}

func (b *Broker) publish(subject string, data interface{}) {
	if b.hermes == nil {
		return
	}
	if err := b.hermes.Publish(subject, data); err != nil {
		b.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// SetupSubscriptions listens for catalog reload requests.
func (b *Broker) SetupSubscriptions(ctx context.Context) {
	if b.hermes == nil || b.loader == nil {
		return
	}
	err := b.hermes.Subscribe(hermes.SubjectCatalogReload, func(_ string, data []byte) {
		var req hermes.CatalogReloadRequest
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req); err != nil {
				b.logger.Warn("invalid catalog reload request", "error", err)
				return
			}
		}
		if err := b.ReloadCatalog(ctx); err != nil {
			b.logger.Error("catalog reload failed", "reason", req.Reason, "error", err)
		}
	})
	if err != nil {
		b.logger.Warn("failed to subscribe to catalog reloads", "error", err)
	}
}

// ReloadCatalog replaces the recommender's catalog using the loader.
// A failed load keeps the current catalog.
func (b *Broker) ReloadCatalog(ctx context.Context) error {
	if b.loader == nil {
		return errors.New("no catalog loader configured")
	}
	cat, err := b.loader(ctx)
	if err != nil {
		return err
	}
	b.rec.SetCatalog(cat)
	metrics.CatalogVehicles.Set(float64(cat.Len()))
	metrics.CatalogDropped.Set(float64(cat.Dropped()))
	b.publish(hermes.SubjectCatalogLoaded, hermes.CatalogLoadedEvent{
		Vehicles:  cat.Len(),
		Dropped:   cat.Dropped(),
		Source:    b.opts.CatalogSource,
		Timestamp: b.now(),
	})
	return nil
}
