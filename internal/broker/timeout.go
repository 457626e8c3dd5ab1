package broker

import (
	"context"
	"time"

	"github.com/MikeSquared-Agency/Advisor/internal/hermes"
	"github.com/MikeSquared-Agency/Advisor/internal/metrics"
)

func (b *Broker) expiryLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.expireSessions()
		}
	}
}

// expireSessions drops sessions idle for longer than the TTL.
func (b *Broker) expireSessions() int {
	now := b.now()
	var expired []hermes.SessionExpiredEvent

	b.mu.Lock()
	for id, e := range b.sessions {
		idle := now.Sub(e.updatedAt)
		if idle <= b.opts.TTL {
			continue
		}
		delete(b.sessions, id)
		expired = append(expired, hermes.SessionExpiredEvent{
			SessionID: id,
			State:     string(e.session.State()),
			IdleFor:   idle.Round(time.Second).String(),
			Timestamp: now,
		})
	}
	n := len(b.sessions)
	b.mu.Unlock()

	if len(expired) == 0 {
		return 0
	}
	metrics.ActiveSessions.Set(float64(n))
	for _, ev := range expired {
		b.logger.Info("session expired", "session_id", ev.SessionID, "state", ev.State, "idle_for", ev.IdleFor)
		b.publish(hermes.SubjectSessionExpired(ev.SessionID), ev)
	}
	return len(expired)
}
