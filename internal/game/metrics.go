package game

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Garsondee/Tank-Arena/internal/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// sessionMetrics are the session's OTel instruments. They are no-ops unless
// the host installs a MeterProvider.
type sessionMetrics struct {
	ticks   metric.Int64Counter
	shots   metric.Int64Counter
	kills   metric.Int64Counter
	pickups metric.Int64Counter
	dropped metric.Int64Counter
	level   metric.Int64Gauge
}

func newSessionMetrics() *sessionMetrics {
	sm, err := buildSessionMetrics(meter())
	if err != nil {
		// The global meter refused an instrument; fall back to no-ops so the
		// simulation never depends on telemetry.
		sm, _ = buildSessionMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	}
	return sm
}

func buildSessionMetrics(m metric.Meter) (*sessionMetrics, error) {
	sm := &sessionMetrics{}
	var err error
	if sm.ticks, err = m.Int64Counter("tanks.session.ticks",
		metric.WithDescription("Simulation ticks processed while running")); err != nil {
		return nil, err
	}
	if sm.shots, err = m.Int64Counter("tanks.combat.shots",
		metric.WithDescription("Shells fired")); err != nil {
		return nil, err
	}
	if sm.kills, err = m.Int64Counter("tanks.combat.kills",
		metric.WithDescription("Enemy tanks destroyed")); err != nil {
		return nil, err
	}
	if sm.pickups, err = m.Int64Counter("tanks.pickups",
		metric.WithDescription("Power-ups collected")); err != nil {
		return nil, err
	}
	if sm.dropped, err = m.Int64Counter("tanks.commands.dropped",
		metric.WithDescription("Input commands dropped because the channel was full")); err != nil {
		return nil, err
	}
	if sm.level, err = m.Int64Gauge("tanks.session.level",
		metric.WithDescription("Current level number")); err != nil {
		return nil, err
	}
	return sm, nil
}

func (sm *sessionMetrics) shot(role Role) {
	sm.shots.Add(context.Background(), 1, metric.WithAttributes(attribute.String("role", role.String())))
}

func (sm *sessionMetrics) pickup(kind PowerUpKind) {
	sm.pickups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind.String())))
}
