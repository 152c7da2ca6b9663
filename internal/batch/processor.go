// Package batch runs the engine over many messages concurrently with a
// bounded number of workers, keeping results in input order.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"avinya/fin-pulse/internal/common"
	"avinya/fin-pulse/internal/engine"
	"avinya/fin-pulse/internal/fileutils"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

// DefaultWorkers is used when a non-positive worker count is configured.
const DefaultWorkers = 4

// Runner processes one message through the pipeline.
type Runner interface {
	Run(text, source string) engine.Result
}

// VoiceParser interprets one spoken utterance.
type VoiceParser interface {
	Parse(utterance string) *models.VoiceExpense
}

// Processor fans messages out to workers.
type Processor struct {
	runner  Runner
	voice   VoiceParser
	workers int
	logger  logging.Logger
}

// NewProcessor creates a Processor. Either runner or voice may be nil when
// the corresponding mode is not used.
func NewProcessor(runner Runner, voice VoiceParser, workers int, logger logging.Logger) *Processor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Processor{
		runner:  runner,
		voice:   voice,
		workers: workers,
		logger:  logging.OrDefault(logger).WithField(logging.FieldComponent, "batch"),
	}
}

// ProcessMessages runs every message from source through the engine. The
// returned rows follow the order of messages. Cancelling ctx stops
// scheduling new messages and returns ctx's error.
func (p *Processor) ProcessMessages(ctx context.Context, messages []fileutils.Message, source string) ([]common.MessageRow, models.ProcessingStats, error) {
	started := time.Now()
	results := make([]engine.Result, len(messages))

	err := p.each(ctx, len(messages), func(i int) {
		results[i] = p.runner.Run(messages[i].Text, source)
	})
	if err != nil {
		return nil, models.ProcessingStats{}, err
	}

	rows := make([]common.MessageRow, len(messages))
	stats := models.ProcessingStats{Total: len(messages)}
	for i, res := range results {
		rows[i] = common.NewMessageRow(messages[i].Line, string(res.Outcome), messages[i].Text, res.Candidate)
		switch res.Outcome {
		case engine.OutcomeCandidate:
			stats.Parsed++
			if res.Candidate.IsCredit {
				stats.Credits++
			} else {
				stats.Debits++
			}
			if res.Candidate.Category == models.CategoryMiscellaneous {
				stats.Uncategorized++
			}
		case engine.OutcomeUnparseable:
			stats.Unparseable++
		default:
			stats.NonTransactions++
		}
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(messages)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).String()},
	).Debug("Batch of messages processed")
	return rows, stats, nil
}

// ProcessUtterances interprets every message as a spoken expense.
func (p *Processor) ProcessUtterances(ctx context.Context, messages []fileutils.Message) ([]common.VoiceRow, models.ProcessingStats, error) {
	results := make([]*models.VoiceExpense, len(messages))

	err := p.each(ctx, len(messages), func(i int) {
		results[i] = p.voice.Parse(messages[i].Text)
	})
	if err != nil {
		return nil, models.ProcessingStats{}, err
	}

	rows := make([]common.VoiceRow, len(messages))
	stats := models.ProcessingStats{Total: len(messages)}
	for i, v := range results {
		rows[i] = common.NewVoiceRow(messages[i].Line, messages[i].Text, v)
		if v == nil {
			stats.Unparseable++
			continue
		}
		stats.Parsed++
		stats.Debits++
		if v.Category == models.CategoryMiscellaneous {
			stats.Uncategorized++
		}
	}
	return rows, stats, nil
}

// each calls fn for 0..n-1 on at most p.workers goroutines.
func (p *Processor) each(ctx context.Context, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
