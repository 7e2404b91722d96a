package typegen

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// LoadFunc produces the unit for one input
type LoadFunc func(ctx context.Context, input string) (*cdecl.TranslationUnit, error)

// SinkFunc receives the result for one input. It is called from worker
// goroutines and must be safe for concurrent use.
type SinkFunc func(input string, result *Result) error

// Batch exports many units in parallel. Each unit is loaded and rendered
// independently; generators keep no state between units.
type Batch struct {
	Generator Generator
	Load      LoadFunc
	Sink      SinkFunc
	// Workers bounds concurrency; values < 1 mean one worker
	Workers int
}

// Run processes inputs and returns their results in input order.
// The first failure cancels the remaining work.
func (b *Batch) Run(ctx context.Context, inputs []string) ([]*Result, error) {
	if b.Generator == nil || b.Load == nil {
		return nil, errors.AssertionFailedf("batch needs a generator and a loader")
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	log := logger.LoggerFromContext(ctx)
	results := make([]*Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			unit, err := b.Load(gctx, input)
			if err != nil {
				return errors.Wrapf(err, "failed to load %s", input)
			}

			result, err := b.Generator.Generate(unit)
			if err != nil {
				return errors.Wrapf(err, "failed to export %s", input)
			}

			if b.Sink != nil {
				if err := b.Sink(input, result); err != nil {
					return errors.Wrapf(err, "failed to write %s", input)
				}
			}

			results[i] = result
			log.Infow("Exported unit",
				logger.FieldUnit, result.Unit,
				logger.FieldFile, input,
				logger.FieldCount, result.Total(),
				logger.FieldDurationMS, time.Since(start).Milliseconds())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
