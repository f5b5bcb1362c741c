// Package lifecycle is the event bus mediating control flow between
// the RangeRaptorWorker and its collaborators: a
// builder collects listener closures for setup-iteration,
// prepare-next-round, round-complete, and iteration-complete; at Seal()
// the builder becomes an immutable Publisher and further registration
// is a programmer error. go-raptor has no event bus of its own, so
// this package has no direct counterpart there.
package lifecycle

import "github.com/transitrouting/rangeraptor/raptor"

// IterationListener is notified at the start of each Range-Raptor
// departure-minute iteration.
type IterationListener interface {
	SetupIteration(departureTime int)
}

// RoundListener is notified at the start of each round and again when
// the round completes.
type RoundListener interface {
	PrepareForNextRound(round int)
	RoundComplete(round int, destinationReached bool)
}

// IterationCompleteListener is notified once an iteration's rounds are
// exhausted and its paths have been frozen into the result set.
type IterationCompleteListener interface {
	IterationComplete()
}

// IterationListenerFunc adapts a function to IterationListener.
type IterationListenerFunc func(departureTime int)

func (f IterationListenerFunc) SetupIteration(departureTime int) { f(departureTime) }

// IterationCompleteListenerFunc adapts a function to
// IterationCompleteListener.
type IterationCompleteListenerFunc func()

func (f IterationCompleteListenerFunc) IterationComplete() { f() }

// Builder accumulates listeners before the worker starts. Registering
// a listener after Seal() panics with an
// raptor.AlgorithmicInvariantViolation — a programmer error, not a
// recoverable one, matching 's taxonomy.
type Builder struct {
	iteration         []IterationListener
	round             []RoundListener
	iterationComplete []IterationCompleteListener
	sealed            bool
}

// NewBuilder returns an empty, unsealed Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) guardUnsealed() {
	if b.sealed {
		panic(&raptor.AlgorithmicInvariantViolation{Msg: "lifecycle: listener registered after publisher sealed"})
	}
}

// OnSetupIteration registers l to run at the start of every iteration.
func (b *Builder) OnSetupIteration(l IterationListener) {
	b.guardUnsealed()
	b.iteration = append(b.iteration, l)
}

// OnRound registers l to run at round boundaries.
func (b *Builder) OnRound(l RoundListener) {
	b.guardUnsealed()
	b.round = append(b.round, l)
}

// OnIterationComplete registers l to run once an iteration's rounds
// are done.
func (b *Builder) OnIterationComplete(l IterationCompleteListener) {
	b.guardUnsealed()
	b.iterationComplete = append(b.iterationComplete, l)
}

// Seal freezes the builder and returns an immutable Publisher. The
// Builder must not be used again.
func (b *Builder) Seal() *Publisher {
	b.sealed = true
	return &Publisher{b: b}
}

// Publisher fans out life-cycle events to the listeners collected by
// its Builder. It is owned by exactly one worker for the lifetime of
// one request.
type Publisher struct {
	b *Builder
}

func (p *Publisher) SetupIteration(departureTime int) {
	for _, l := range p.b.iteration {
		l.SetupIteration(departureTime)
	}
}

func (p *Publisher) PrepareForNextRound(round int) {
	for _, l := range p.b.round {
		l.PrepareForNextRound(round)
	}
}

func (p *Publisher) RoundComplete(round int, destinationReached bool) {
	for _, l := range p.b.round {
		l.RoundComplete(round, destinationReached)
	}
}

func (p *Publisher) IterationComplete() {
	for _, l := range p.b.iterationComplete {
		l.IterationComplete()
	}
}
