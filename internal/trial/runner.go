package trial

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"absim/domain/audience"
	"absim/domain/content"
	"absim/domain/core"
	"absim/domain/experiment"
	"absim/ports"
)

// cancelCheckInterval is how many consumers run between context checks
const cancelCheckInterval = 1024

// Runner pairs consumers with items of one arm and records the outcomes.
// Consumers and items are only read.
type Runner struct {
	rng     ports.RNGPort
	workers int
}

// NewRunner creates a runner. workers <= 1 selects the sequential reference
// mode; larger values fan out over consumers with partitioned streams.
func NewRunner(rng ports.RNGPort, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{rng: rng, workers: workers}
}

// Workers returns the configured fan-out
func (r *Runner) Workers() int {
	return r.workers
}

// Partitioned reports whether the runner uses per-consumer sub-streams
func (r *Runner) Partitioned() bool {
	return r.workers > 1
}

// Run executes one arm on the shared stream. For every consumer in order
// it draws the item choice, the click decision and, after a click, the
// dwell time, so a fixed seed replays the exact same draws.
func (r *Runner) Run(ctx context.Context, variant experiment.Variant, consumers []audience.Consumer, items []content.Item, stream *rand.Rand) ([]experiment.Outcome, error) {
	if err := checkInputs(consumers, items); err != nil {
		return nil, err
	}

	outcomes := make([]experiment.Outcome, len(consumers))
	for i, c := range consumers {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		outcomes[i] = runOne(variant, c, items, stream)
	}
	return outcomes, nil
}

// RunPartitioned executes one arm with one deterministic sub-stream per
// consumer. Output depends on seed, variant and consumer index only, so it
// is the same for every worker count, but it does not match Run.
func (r *Runner) RunPartitioned(ctx context.Context, variant experiment.Variant, consumers []audience.Consumer, items []content.Item, seed int64) ([]experiment.Outcome, error) {
	if err := checkInputs(consumers, items); err != nil {
		return nil, err
	}

	outcomes := make([]experiment.Outcome, len(consumers))
	if len(consumers) == 0 {
		return outcomes, nil
	}

	chunk := (len(consumers) + r.workers - 1) / r.workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for start := 0; start < len(consumers); start += chunk {
		end := min(start+chunk, len(consumers))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				stream, err := r.rng.Stream(gctx, seed, string(variant), i)
				if err != nil {
					return fmt.Errorf("sub-stream %s/%d: %w", variant, i, err)
				}
				outcomes[i] = runOne(variant, consumers[i], items, stream)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runOne(variant experiment.Variant, c audience.Consumer, items []content.Item, stream *rand.Rand) experiment.Outcome {
	item := items[stream.IntN(len(items))]

	outcome := experiment.Outcome{Variant: variant, ItemID: item.ID}
	if c.DecideClick(item, stream) {
		outcome.Clicked = true
		outcome.DwellTime = c.DwellTime(item, stream)
		outcome.Bounced = c.CheckBounce(item, outcome.DwellTime)
	}
	return outcome
}

func checkInputs(consumers []audience.Consumer, items []content.Item) error {
	if len(consumers) > 0 && len(items) == 0 {
		return fmt.Errorf("%w (consumers=%d)", core.ErrEmptyItemSet, len(consumers))
	}
	return nil
}
