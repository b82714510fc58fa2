// Package generate runs invoice rendering off the interactive path.
//
// Each request gets one dedicated background goroutine (not a pool; a
// render is a user-triggered one-shot). The goroutine owns no state
// across calls: a render is a pure function of its input snapshot.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/invobook/invobook/internal/invoice/render"
)

// ErrCanceled marks a job abandoned before it produced a result. It is a
// third outcome, distinct from success and from failure.
var ErrCanceled = errors.New("render canceled")

// IsCanceled reports whether err is the canceled outcome. It covers both
// the job's own sentinel and the caller's context expiring while waiting
// on the job, so HTTP handlers classify a dropped connection correctly.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Renderer is the layout engine the generator drives. *render.Renderer
// satisfies it.
type Renderer interface {
	RenderWithProgress(in render.Input, onStage func(render.Stage)) (*render.Document, error)
}

// RenderError wraps a layout fault inside the renderer.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("invoice render failed: %v", e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// WorkerError marks a fault of the background execution itself, kept
// separate from renderer faults because remediation differs.
type WorkerError struct {
	Reason string
}

func (e *WorkerError) Error() string { return fmt.Sprintf("render worker fault: %s", e.Reason) }

// Progress is one checkpoint notification. Percentages are monotonically
// non-decreasing within a job and end at 100 on success.
type Progress struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

var stageProgress = map[render.Stage]Progress{
	render.StageStart:    {Percent: 0, Stage: "starting"},
	render.StageHeader:   {Percent: 15, Stage: "header complete"},
	render.StageCustomer: {Percent: 30, Stage: "customer details complete"},
	render.StageItems:    {Percent: 60, Stage: "items complete"},
	render.StageTotals:   {Percent: 80, Stage: "totals and tax complete"},
	render.StageFooter:   {Percent: 95, Stage: "footer complete"},
	render.StageDone:     {Percent: 100, Stage: "done"},
}

// Job is the handle for one in-flight render. Concurrent jobs each own an
// independent progress stream.
type Job struct {
	id       uuid.UUID
	progress chan Progress
	done     chan struct{}
	cancel   context.CancelFunc

	doc *render.Document
	err error
}

func (j *Job) ID() uuid.UUID { return j.id }

// Progress yields checkpoint notifications in stage order. The channel is
// closed when the job finishes.
func (j *Job) Progress() <-chan Progress { return j.progress }

// Done is closed once the job has a result.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result blocks until the job finishes, then returns the document or the
// job's outcome error (ErrCanceled, *RenderError, or *WorkerError).
func (j *Job) Result() (*render.Document, error) {
	<-j.done
	return j.doc, j.err
}

// Wait is Result bounded by the caller's context.
func (j *Job) Wait(ctx context.Context) (*render.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-j.done:
		return j.doc, j.err
	}
}

// Cancel abandons the job. Cancellation is advisory: it takes effect
// before dispatch, or suppresses a late result once in flight; a pass
// already inside the layout engine is not preempted.
func (j *Job) Cancel() { j.cancel() }

type Params struct {
	fx.In

	Log      *zap.Logger
	Renderer *render.Renderer
}

type Generator struct {
	log      *zap.Logger
	renderer Renderer
}

func NewGenerator(p Params) *Generator {
	return &Generator{
		log:      p.Log.Named("invoice.generate"),
		renderer: p.Renderer,
	}
}

// Generate starts a background render of the given snapshot and returns
// its handle immediately.
func (g *Generator) Generate(ctx context.Context, in render.Input) *Job {
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{
		id:       uuid.New(),
		progress: make(chan Progress, len(stageProgress)),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	go g.run(ctx, job, in)
	return job
}

func (g *Generator) run(ctx context.Context, job *Job, in render.Input) {
	defer job.cancel()
	defer close(job.done)
	defer close(job.progress)
	defer func() {
		if r := recover(); r != nil {
			job.doc = nil
			job.err = &WorkerError{Reason: fmt.Sprintf("panic: %v", r)}
			g.log.Error("render worker panicked",
				zap.String("job_id", job.id.String()),
				zap.Any("panic", r),
			)
		}
	}()

	if ctx.Err() != nil {
		job.err = ErrCanceled
		return
	}

	doc, err := g.renderer.RenderWithProgress(in, func(s render.Stage) {
		if ctx.Err() != nil {
			return
		}
		if p, ok := stageProgress[s]; ok {
			// Buffered to the number of checkpoints; never blocks layout.
			select {
			case job.progress <- p:
			default:
			}
		}
	})

	if ctx.Err() != nil {
		// A late result after cancellation is discarded, not reported.
		job.err = ErrCanceled
		return
	}
	if err != nil {
		job.err = &RenderError{Err: err}
		g.log.Error("render failed",
			zap.String("job_id", job.id.String()),
			zap.Error(err),
		)
		return
	}

	job.doc = doc
	g.log.Info("render finished",
		zap.String("job_id", job.id.String()),
		zap.Int("bytes", len(doc.Bytes())),
	)
}
