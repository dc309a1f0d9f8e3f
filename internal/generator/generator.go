package generator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cdtdelta/cmdsynth/internal/catalog"
	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/outcome"
	"github.com/cdtdelta/cmdsynth/internal/population"
	"github.com/cdtdelta/cmdsynth/internal/render"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

// DefaultChunkSize is the number of rows generated from one random stream.
const DefaultChunkSize = 4096

// Window is the span before the anchor that timestamps fall into.
const Window = 365 * 24 * time.Hour

// populationStream is the stream id reserved for building users. Chunk
// streams use ids 0, 1, 2, ...
const populationStream = ^uint64(0)

// ErrInvalidRowCount is returned for a row count below one.
var ErrInvalidRowCount = errors.New("row count must be a positive integer")

// Recorder observes every generated event. Implementations must be safe for
// concurrent use when Stream runs with more than one worker.
type Recorder interface {
	Observe(ev *model.CommandEvent, chained bool)
}

// Config controls a generation run.
type Config struct {
	// Seed selects the random streams. Equal seeds, anchors and row counts
	// give identical events.
	Seed uint64
	// Anchor is the end of the trailing-year timestamp window. Zero means now.
	Anchor time.Time
	// MaxUsers caps the population; zero means population.DefaultMaxUsers.
	MaxUsers int
	// ChunkSize is the number of rows per random stream; zero means DefaultChunkSize.
	ChunkSize int
	// Recorder is optional.
	Recorder Recorder
}

// Generator produces synthetic command events for a fixed row count.
// The selector and population are built once and only read
// afterwards, so the generator can be shared between goroutines.
type Generator struct {
	cfg  Config
	rows int

	selector *catalog.Selector
	users    []model.User
	pickUser *sampling.Picker
	start    time.Time
}

// New prepares a generator for rows events.
func New(rows int, cfg Config) (*Generator, error) {
	if rows < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRowCount, rows)
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Anchor.IsZero() {
		cfg.Anchor = time.Now()
	}

	selector, err := catalog.NewSelector(catalog.Build())
	if err != nil {
		return nil, fmt.Errorf("building template selector: %w", err)
	}

	users := population.Generate(sampling.NewStream(cfg.Seed, populationStream), rows, cfg.MaxUsers)
	pickUser, err := population.NewPicker(users)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		rows:     rows,
		selector: selector,
		users:    users,
		pickUser: pickUser,
		start:    cfg.Anchor.UTC().Add(-Window),
	}, nil
}

// Rows returns the number of events the generator produces.
func (g *Generator) Rows() int {
	return g.rows
}

// Users returns a copy of the generated population.
func (g *Generator) Users() []model.User {
	out := make([]model.User, len(g.users))
	copy(out, g.users)
	return out
}

func (g *Generator) numChunks() int {
	return (g.rows + g.cfg.ChunkSize - 1) / g.cfg.ChunkSize
}

func (g *Generator) chunkLen(k int) int {
	return min(g.cfg.ChunkSize, g.rows-k*g.cfg.ChunkSize)
}

// Events returns the events as a lazy sequence of exactly Rows() items.
// Ranging over it again restarts from the same streams.
func (g *Generator) Events() iter.Seq[model.CommandEvent] {
	return func(yield func(model.CommandEvent) bool) {
		for k := range g.numChunks() {
			st := sampling.NewStream(g.cfg.Seed, uint64(k))
			for range g.chunkLen(k) {
				if !yield(g.next(st)) {
					return
				}
			}
		}
	}
}

// Stream generates all events with up to workers goroutines and passes them
// to emit in the same order Events yields them. emit is only called from
// the calling goroutine. An error from emit or ctx stops generation.
func (g *Generator) Stream(ctx context.Context, workers int, emit func(*model.CommandEvent) error) error {
	workers = max(workers, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Bounded window of chunks in flight, consumed in order.
	pending := make(chan chan []model.CommandEvent, workers*2)

	var eg errgroup.Group
	eg.SetLimit(workers)

	go func() {
		defer close(pending)
		for k := range g.numChunks() {
			out := make(chan []model.CommandEvent, 1)
			select {
			case pending <- out:
			case <-ctx.Done():
				return
			}
			eg.Go(func() error {
				out <- g.chunk(k)
				return nil
			})
		}
	}()

	var err error
	for out := range pending {
		if err != nil {
			continue
		}
		select {
		case events := <-out:
			for i := range events {
				if err = emit(&events[i]); err != nil {
					cancel()
					break
				}
			}
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	if waitErr := eg.Wait(); err == nil {
		err = waitErr
	}
	if err == nil {
		// the dispatcher may have stopped early on cancellation
		err = ctx.Err()
	}
	return err
}

func (g *Generator) chunk(k int) []model.CommandEvent {
	st := sampling.NewStream(g.cfg.Seed, uint64(k))
	events := make([]model.CommandEvent, g.chunkLen(k))
	for i := range events {
		events[i] = g.next(st)
	}
	return events
}

// next draws one event: user, template, context, rendering, outcome and
// the surrounding metadata, all from st.
func (g *Generator) next(st *sampling.Stream) model.CommandEvent {
	u := &g.users[g.pickUser.Pick(st)]
	tmpl := g.selector.Select(u, st)
	ctx := population.BuildContext(u, st)
	res := render.Render(tmpl, ctx, st)

	ev := model.CommandEvent{
		CommandID:        uuid.Must(uuid.NewRandomFromReader(st)).String(),
		RawCommand:       res.Command,
		BaseCommand:      tmpl.BaseCommand,
		ShellType:        u.ShellType,
		ExitCode:         outcome.SampleExitCode(tmpl.RiskLevel, st),
		Timestamp:        g.timestamp(st),
		SudoUsed:         res.SudoUsed,
		WorkingDirectory: population.WorkingDirectory(u, st),
		UserID:           u.ID,
		UserName:         u.Name,
		HostName:         population.Host(st),
		RiskLevel:        tmpl.RiskLevel,
	}
	if g.cfg.Recorder != nil {
		g.cfg.Recorder.Observe(&ev, res.Chained)
	}
	return ev
}

func (g *Generator) timestamp(st *sampling.Stream) string {
	offset := time.Duration(st.Int64N(int64(Window)))
	return g.start.Add(offset).Format(model.TimestampLayout)
}
