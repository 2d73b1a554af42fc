package core

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// Subscriber receives the session alerts published on an AlertBus.
type Subscriber interface {
	OnAlert(alert schema.VolumeAlert)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(alert schema.VolumeAlert)

// OnAlert calls f(alert).
func (f SubscriberFunc) OnAlert(alert schema.VolumeAlert) { f(alert) }

// AlertBus delivers session alerts to explicit subscribers. Subscriptions may
// change from any goroutine; delivery follows subscription order.
type AlertBus struct {
	mu   sync.RWMutex
	next int
	subs map[int]Subscriber
}

// NewAlertBus creates an empty bus.
func NewAlertBus() *AlertBus {
	return &AlertBus{subs: make(map[int]Subscriber)}
}

// Subscribe registers s and returns the function that removes it again.
// Calling the returned function more than once is harmless.
func (b *AlertBus) Subscribe(s Subscriber) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = s
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Len returns the number of active subscribers.
func (b *AlertBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers every alert to every current subscriber. Subscribers are
// called outside the lock and may unsubscribe themselves.
func (b *AlertBus) Publish(alerts ...schema.VolumeAlert) {
	if len(alerts) == 0 {
		return
	}
	b.mu.RLock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	subs := make([]Subscriber, len(ids))
	for i, id := range ids {
		subs[i] = b.subs[id]
	}
	b.mu.RUnlock()

	for _, a := range alerts {
		contract.Logger().Info("volume alert",
			zap.String("session", a.SessionID),
			zap.String("muscle", a.Muscle),
			zap.String("kind", string(a.Kind)),
			zap.Float64("volume", a.Volume),
			zap.String("culprit", a.CulpritExerciseName),
		)
		for _, s := range subs {
			s.OnAlert(a)
		}
	}
}

// Evaluator runs session aggregation with optional memoization and publishes
// the resulting alerts on its bus.
type Evaluator struct {
	bus  *AlertBus
	memo contract.CacheStore
}

// NewEvaluator creates an evaluator. Both bus and memo may be nil.
func NewEvaluator(bus *AlertBus, memo contract.CacheStore) *Evaluator {
	return &Evaluator{bus: bus, memo: memo}
}

// Evaluate aggregates one session. Sessions without an ID get a fresh one so
// that published alerts can be correlated.
func (e *Evaluator) Evaluate(exercises []schema.SessionExercise, tanks schema.BatteryTanks, ctx schema.SessionContext) schema.SessionSummary {
	if ctx.SessionID == "" {
		ctx.SessionID = uuid.NewString()
	}
	summary := cachedAggregateSession(e.memo, exercises, tanks, ctx)
	stampSession(&summary, ctx.SessionID)
	if e.bus != nil {
		e.bus.Publish(summary.Alerts...)
	}
	return summary
}

// EvaluateWeek aggregates a week and publishes the alerts of each session in order.
func (e *Evaluator) EvaluateWeek(sessions []schema.SessionInput, tanks schema.BatteryTanks, ctx schema.SessionContext, history []float64) schema.WeekSummary {
	named := slices.Clone(sessions)
	for i := range named {
		if named[i].ID == "" {
			named[i].ID = uuid.NewString()
		}
	}
	week := AggregateWeek(named, tanks, ctx, history)
	if e.bus != nil {
		for _, s := range week.Sessions {
			e.bus.Publish(s.Alerts...)
		}
	}
	return week
}

// Recommend computes recommendations through the memo.
func (e *Evaluator) Recommend(muscles []string, profile *schema.AthleteProfile, phase schema.TrainingPhase, intensity schema.IntensityTier, frequency int) []schema.VolumeRecommendation {
	return cachedRecommendMany(e.memo, muscles, profile, phase, intensity, frequency)
}

func stampSession(summary *schema.SessionSummary, id string) {
	summary.SessionID = id
	for i := range summary.Alerts {
		summary.Alerts[i].SessionID = id
	}
}
