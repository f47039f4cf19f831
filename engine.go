package cliffordsim

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Engine drives one simulation run: a program of operations over a fresh
// tableau and data store. An Engine is single-use and single-threaded;
// independent trials want independent Engines.
type Engine struct {
	ops       []Operation
	numQubits int
	rng       *rand.Rand
	logger    *zap.Logger

	tableau *Tableau
	data    *DataStore
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes measurement outcomes reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a random source directly.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithLogger injects a logger; the default is a nop.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine builds an engine for the given program and qubit count.
func NewEngine(ops []Operation, numQubits int, opts ...Option) *Engine {
	e := &Engine{
		ops:       ops,
		numQubits: numQubits,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the program: the tableau pass first, then, if the program
// uses frames, the forward and backward frame passes over the same data
// store. The first error aborts the run; no partial result is kept.
func (e *Engine) Run() error {
	tab := NewTableau(e.numQubits)
	ds := NewDataStore()

	if err := Apply(e.ops, tab, ds, e.rng); err != nil {
		return errors.Wrap(err, "apply")
	}

	if hasFrameOps(e.ops) {
		if _, err := ApplyFrames(e.ops, e.numQubits, ds, Forward); err != nil {
			return errors.Wrap(err, "forward frame pass")
		}
		if _, err := ApplyFrames(e.ops, e.numQubits, ds, Backward); err != nil {
			return errors.Wrap(err, "backward frame pass")
		}
	}

	ds.StabilizerSet = tab.StabilizerStrings()
	e.tableau = tab
	e.data = ds

	measurements := 0
	for _, byID := range ds.Measurements {
		measurements += len(byID)
	}
	e.logger.Info("run complete",
		zap.Int("operations", len(e.ops)),
		zap.Int("qubits", tab.NumQubits),
		zap.Int("measurements", measurements),
	)
	return nil
}

// TableauWithScratch returns the final tableau of the last Run, scratch row
// included.
func (e *Engine) TableauWithScratch() *Tableau {
	return e.tableau
}

// Data returns the data store of the last Run.
func (e *Engine) Data() *DataStore {
	return e.data
}
