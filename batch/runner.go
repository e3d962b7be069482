package batch

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/search"
)

// Item is one question to evaluate. Expect optionally names a section id
// the answer should have been drawn from.
type Item struct {
	ID       string
	Question string
	History  []core.Message
	Expect   string
}

// Outcome is the evaluation of one Item.
type Outcome struct {
	Item    Item
	Result  *core.SearchResult
	Number  *int
	Err     error
	Elapsed time.Duration
}

// Matched reports whether the expected section was used.
// It is true when the item expects nothing.
func (o *Outcome) Matched() bool {
	if o.Item.Expect == "" {
		return true
	}
	return o.Result != nil && slices.Contains(o.Result.SectionIDs, o.Item.Expect)
}

// Runner evaluates questions on a bounded worker pool. Each question is still
// one sequential retrieval chain.
type Runner struct {
	retriever      search.Retriever
	pool           *ants.Pool
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the number of concurrent questions.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.pool != nil {
			r.pool.Release()
		}
		r.pool = pool
		return nil
	}
}

// WithProgress writes a progress line to w every interval questions.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Runner) error {
		r.progress = w
		r.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a runner. Call Release when done.
func NewRunner(retriever search.Retriever, opts ...Option) (*Runner, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		retriever: retriever,
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}
	r.logger = r.logger.With("component", "batch")
	return r, nil
}

// Run evaluates every item and returns the outcomes in item order.
// Failures are recorded per outcome; Run itself only fails when the pool
// rejects work or ctx is done before every item was submitted.
func (r *Runner) Run(ctx context.Context, items []Item) ([]Outcome, error) {
	outcomes := make([]Outcome, len(items))
	var tracker *progressTracker
	if r.progress != nil {
		tracker = newProgressTracker(r.progress, len(items), r.reportInterval)
	}

	var wg sync.WaitGroup
	var submitErr error
	for i := range items {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		item := items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = r.evaluate(ctx, item)
			if tracker != nil {
				tracker.done(outcomes[i].Err != nil)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()
	if tracker != nil {
		tracker.finish()
	}

	if submitErr != nil {
		return nil, submitErr
	}
	return outcomes, nil
}

func (r *Runner) evaluate(ctx context.Context, item Item) Outcome {
	start := time.Now()
	result, err := r.retriever.Retrieve(ctx, item.Question, item.History)
	out := Outcome{
		Item:    item,
		Result:  result,
		Err:     err,
		Elapsed: time.Since(start),
	}
	if err != nil {
		r.logger.Error("error evaluating question", "id", item.ID, "err", err)
		return out
	}
	out.Number = search.ExtractNumber(result.Answer)
	r.logger.Debug("question evaluated", "id", item.ID, "sections", result.SectionIDs, "elapsed", out.Elapsed)
	return out
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
