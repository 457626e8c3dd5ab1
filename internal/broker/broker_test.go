package broker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/explain"
	"github.com/MikeSquared-Agency/Advisor/internal/hermes"
	"github.com/MikeSquared-Agency/Advisor/internal/recommend"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
	"github.com/MikeSquared-Agency/Advisor/internal/wizard"
)

// Mock implementations

type published struct {
	subject string
	data    interface{}
}

type mockHermes struct {
	mu       sync.Mutex
	events   []published
	handlers map[string]func(string, []byte)
}

func newMockHermes() *mockHermes {
	return &mockHermes{handlers: make(map[string]func(string, []byte))}
}

func (m *mockHermes) Publish(subject string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, published{subject, data})
	return nil
}

func (m *mockHermes) Subscribe(subject string, handler func(string, []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[subject] = handler
	return nil
}

func (m *mockHermes) Close() {}

func (m *mockHermes) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.subject)
	}
	return out
}

func (m *mockHermes) deliver(subject string, data []byte) {
	m.mu.Lock()
	h := m.handlers[subject]
	m.mu.Unlock()
	h(subject, data)
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Vehicle{
		{Brand: "Toyota", Name: "Corolla", Price: 21500, Horsepower: f64(139), Seats: intp(5), FuelType: "Petrol"},
		{Brand: "Tesla", Name: "Model 3", Price: 39990, Horsepower: f64(283), Seats: intp(5), FuelType: "Electric"},
		{Brand: "Toyota", Name: "Land Cruiser", Price: 87000, Horsepower: f64(409), Seats: intp(7), FuelType: "Diesel"},
	})
}

func newTestBroker(h hermes.Client, opts Options) *Broker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := recommend.New(testCatalog(), scoring.NewScorer(scoring.DefaultWeights(), logger),
		explain.NewGenerator(1), recommend.Options{}, logger)
	return New(rec, h, opts, logger)
}

func TestSessionLifecycle(t *testing.T) {
	h := newMockHermes()
	b := newTestBroker(h, Options{})

	snap, err := b.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if snap.State != wizard.StateIntro || snap.ID == "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	id := snap.ID

	snap, err = b.Begin(id)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if snap.State != wizard.StateBudget || snap.Question == "" {
		t.Fatalf("expected budget question, got %+v", snap)
	}

	answers := []wizard.Answer{
		{Max: "50000"},
		{Value: "electric"},
		{Skip: true},
		{Value: "1"}, // brands sorted: Tesla, Toyota
	}
	for _, a := range answers {
		if snap, err = b.Answer(id, a); err != nil {
			t.Fatalf("Answer(%+v) failed: %v", a, err)
		}
	}
	if snap.State != wizard.StateHorsepower {
		t.Fatalf("expected horsepower state, got %s", snap.State)
	}
	wantApplied := []string{"Budget: no minimum - $50,000", "Fuel: Electric", "Brand: Tesla"}
	if strings.Join(snap.Applied, "|") != strings.Join(wantApplied, "|") {
		t.Errorf("expected applied %v, got %v", wantApplied, snap.Applied)
	}

	snap, err = b.Answer(id, wizard.Answer{Skip: true})
	if err != nil {
		t.Fatal(err)
	}
	if snap.State != wizard.StateResults || snap.Result == nil {
		t.Fatalf("expected results with a result attached, got %+v", snap)
	}
	if snap.Result.Total != 1 || snap.Result.Recommendations[0].Vehicle.Name != "Model 3" {
		t.Errorf("unexpected result: %+v", snap.Result)
	}

	snap, err = b.Restart(id)
	if err != nil {
		t.Fatal(err)
	}
	if snap.State != wizard.StateIntro || len(snap.Applied) != 0 {
		t.Errorf("expected fresh intro, got %+v", snap)
	}

	subjects := h.subjects()
	want := []string{
		hermes.SubjectSessionStarted(id),
		"served",
		hermes.SubjectSessionRestarted(id),
	}
	if len(subjects) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), subjects)
	}
	if subjects[0] != want[0] || subjects[2] != want[2] || !strings.HasSuffix(subjects[1], ".served") {
		t.Errorf("unexpected events: %v", subjects)
	}
	ev := h.events[1].data.(hermes.RecommendationServedEvent)
	if ev.SessionID != id || ev.Source != SourceSession || ev.TopVehicle != "Tesla Model 3" {
		t.Errorf("unexpected served event: %+v", ev)
	}
}

func TestOptionsOnChoiceScreens(t *testing.T) {
	b := newTestBroker(nil, Options{})
	snap, _ := b.Create()
	id := snap.ID
	_, _ = b.Begin(id)
	snap, _ = b.Answer(id, wizard.Answer{Skip: true})
	if snap.State != wizard.StateFuel || len(snap.Options) != 3 {
		t.Errorf("expected 3 fuel options, got %+v", snap)
	}
}

func TestAnswerMalformedRange(t *testing.T) {
	b := newTestBroker(nil, Options{})
	snap, _ := b.Create()
	_, _ = b.Begin(snap.ID)

	snap, err := b.Answer(snap.ID, wizard.Answer{Min: "cheap"})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Accepted == nil || *snap.Accepted {
		t.Error("expected accepted=false for malformed budget")
	}
	if len(snap.Applied) != 0 {
		t.Errorf("expected budget cleared, got %v", snap.Applied)
	}
}

func TestUnknownSessionAndBadTransitions(t *testing.T) {
	b := newTestBroker(nil, Options{})
	if _, err := b.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := b.Answer("nope", wizard.Answer{}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := b.Delete("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	snap, _ := b.Create()
	if _, err := b.Answer(snap.ID, wizard.Answer{Skip: true}); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition answering on intro, got %v", err)
	}
	if _, err := b.Restart(snap.ID); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition restarting from intro, got %v", err)
	}
	if err := b.Delete(snap.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected no sessions, got %d", b.Len())
	}
}

func TestMaxSessions(t *testing.T) {
	b := newTestBroker(nil, Options{MaxSessions: 2})
	for i := 0; i < 2; i++ {
		if _, err := b.Create(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.Create(); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("expected ErrTooManySessions, got %v", err)
	}
}

func TestExpireSessions(t *testing.T) {
	h := newMockHermes()
	b := newTestBroker(h, Options{TTL: 10 * time.Minute})
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return base }

	old, _ := b.Create()
	b.now = func() time.Time { return base.Add(8 * time.Minute) }
	fresh, _ := b.Create()

	b.now = func() time.Time { return base.Add(11 * time.Minute) }
	if n := b.expireSessions(); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if _, err := b.Get(old.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("expected idle session to be gone")
	}
	if _, err := b.Get(fresh.ID); err != nil {
		t.Error("expected recent session to survive")
	}
	subjects := h.subjects()
	if len(subjects) != 1 || subjects[0] != hermes.SubjectSessionExpired(old.ID) {
		t.Errorf("expected one expired event, got %v", subjects)
	}
}

func TestStartStopWithoutTTL(t *testing.T) {
	b := newTestBroker(nil, Options{})
	b.Start(context.Background())
	b.Stop()
	b.Stop()
}

func TestExpiryLoopStops(t *testing.T) {
	b := newTestBroker(nil, Options{TTL: time.Minute, SweepInterval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	cancel()
	done := make(chan struct{})
	go func() { b.Stop(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expiry loop did not stop")
	}
}

func TestStatelessRecommendPublishes(t *testing.T) {
	h := newMockHermes()
	b := newTestBroker(h, Options{})
	c := catalog.NewCriteria()
	c.FuelType = "diesel"

	res := b.Recommend(c, 5)
	if res.Total != 1 {
		t.Fatalf("expected 1 result, got %d", res.Total)
	}
	ev, ok := h.events[0].data.(hermes.RecommendationServedEvent)
	if !ok || ev.Source != SourceStateless || ev.SessionID != "" || ev.TopVehicle != "Toyota Land Cruiser" {
		t.Errorf("unexpected event: %+v", h.events[0])
	}
}

func TestCatalogReloadOverHermes(t *testing.T) {
	h := newMockHermes()
	b := newTestBroker(h, Options{CatalogSource: "csv"})
	b.SetLoader(func(context.Context) (*catalog.Catalog, error) {
		return catalog.New([]catalog.Vehicle{{Brand: "Kia", Name: "Rio", Price: 17000}}), nil
	})
	b.SetupSubscriptions(context.Background())

	h.deliver(hermes.SubjectCatalogReload, []byte(`{"reason":"nightly import"}`))

	if b.Recommender().Catalog().Len() != 1 {
		t.Fatalf("expected reloaded catalog with 1 vehicle, got %d", b.Recommender().Catalog().Len())
	}
	ev, ok := h.events[0].data.(hermes.CatalogLoadedEvent)
	if !ok || ev.Vehicles != 1 || ev.Source != "csv" {
		t.Errorf("unexpected loaded event: %+v", h.events[0])
	}
}

func TestCatalogReloadFailureKeepsCatalog(t *testing.T) {
	b := newTestBroker(nil, Options{})
	if err := b.ReloadCatalog(context.Background()); err == nil {
		t.Error("expected error without loader")
	}
	b.SetLoader(func(context.Context) (*catalog.Catalog, error) {
		return nil, errors.New("source unavailable")
	})
	if err := b.ReloadCatalog(context.Background()); err == nil {
		t.Error("expected loader error")
	}
	if b.Recommender().Catalog().Len() != 3 {
		t.Error("expected previous catalog to remain")
	}
}
