// Package adapters provides violation sinks that plug into a contract's
// failure callback, for integrators that count or ship violations to
// external systems. Sinks consume callback events only; the engine never
// depends on them.
package adapters

import (
	"context"
	"log"
	"sync"

	covenant "github.com/covenant/covenant-go"
)

// Sink receives contract violations for external reporting.
type Sink interface {
	Record(ctx context.Context, v *covenant.Violation) error
	Close() error
}

// OnFailure builds a failure callback that records each violation to
// sink and then surfaces it unchanged. Record errors are logged, never
// allowed to mask the violation itself.
func OnFailure(sink Sink) func(covenant.Event) error {
	return func(e covenant.Event) error {
		v := covenant.NewViolation(e)
		if err := sink.Record(context.Background(), v); err != nil {
			log.Printf("covenant: recording violation %s: %v", v.ID, err)
		}
		return v
	}
}

// LogOnly builds a failure callback that records each violation and
// recovers it, so validation continues. Suited to enforcement-off
// production rollouts.
func LogOnly(sink Sink) func(covenant.Event) error {
	return func(e covenant.Event) error {
		v := covenant.NewViolation(e)
		if err := sink.Record(context.Background(), v); err != nil {
			log.Printf("covenant: recording violation %s: %v", v.ID, err)
		}
		return nil
	}
}

// Memory is an in-process sink retaining violations, for tests and
// debugging.
type Memory struct {
	mu         sync.Mutex
	violations []*covenant.Violation
}

// NewMemory creates an empty in-process sink.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(_ context.Context, v *covenant.Violation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations = append(m.violations, v)
	return nil
}

func (m *Memory) Close() error { return nil }

// Violations returns a snapshot of everything recorded so far.
func (m *Memory) Violations() []*covenant.Violation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*covenant.Violation, len(m.violations))
	copy(out, m.violations)
	return out
}
