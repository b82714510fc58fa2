package generate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invobook/invobook/internal/invoice/render"
	"github.com/invobook/invobook/internal/invoice/totals"
)

func generatorInput(lineCount int) render.Input {
	lines := make([]render.LineView, 0, lineCount)
	items := make([]totals.Line, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		l := totals.Line{Quantity: 2, Price: 150, TaxRate: 18}
		items = append(items, l)
		lines = append(lines, render.LineView{
			Name:     fmt.Sprintf("Service %d", i+1),
			Quantity: l.Quantity,
			Price:    l.Price,
			TaxRate:  l.TaxRate,
			Amount:   totals.LineAmount(l),
		})
	}
	return render.Input{
		Invoice:  render.InvoiceView{Number: "INV-0042", Date: time.Now(), CustomerName: "Acme"},
		Business: render.BusinessView{Name: "Sharma Electricals"},
		Settings: render.SettingsView{CurrencySymbol: "₹"},
		Totals:   totals.Compute(items, 18, 0),
		Lines:    lines,
	}
}

func newTestGenerator() *Generator {
	return &Generator{
		log:      zap.NewNop(),
		renderer: render.NewRenderer(zap.NewNop()),
	}
}

// stubRenderer stands in for the layout engine so faults and slow renders
// can be scripted.
type stubRenderer struct {
	err      error
	panicMsg string
	gate     chan struct{}
}

func (s *stubRenderer) RenderWithProgress(in render.Input, onStage func(render.Stage)) (*render.Document, error) {
	if s.gate != nil {
		<-s.gate
	}
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return nil, s.err
}

func TestGenerate_ProgressMonotonicEndsAt100(t *testing.T) {
	g := newTestGenerator()

	job := g.Generate(context.Background(), generatorInput(4))

	var seen []Progress
	for p := range job.Progress() {
		seen = append(seen, p)
	}

	doc, err := job.Result()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Bytes())

	require.NotEmpty(t, seen)
	last := -1
	for _, p := range seen {
		assert.GreaterOrEqual(t, p.Percent, last)
		last = p.Percent
	}
	assert.Equal(t, 100, seen[len(seen)-1].Percent)
	assert.Equal(t, "done", seen[len(seen)-1].Stage)
}

func TestGenerate_CancelBeforeDispatch(t *testing.T) {
	g := newTestGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := g.Generate(ctx, generatorInput(1))
	doc, err := job.Result()

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestGenerate_CancelIsNotAGenericError(t *testing.T) {
	g := newTestGenerator()

	job := g.Generate(context.Background(), generatorInput(1))
	job.Cancel()

	_, err := job.Result()
	if err != nil {
		assert.ErrorIs(t, err, ErrCanceled)
		var re *RenderError
		assert.False(t, errors.As(err, &re))
	}
}

func TestGenerate_RendererFaultIsRenderError(t *testing.T) {
	g := &Generator{
		log:      zap.NewNop(),
		renderer: &stubRenderer{err: errors.New("image region overflow")},
	}

	job := g.Generate(context.Background(), generatorInput(1))
	doc, err := job.Result()

	assert.Nil(t, doc)
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.ErrorContains(t, re.Unwrap(), "image region overflow")
	var we *WorkerError
	assert.False(t, errors.As(err, &we))
}

func TestGenerate_RendererPanicIsWorkerError(t *testing.T) {
	g := &Generator{
		log:      zap.NewNop(),
		renderer: &stubRenderer{panicMsg: "nil font reference"},
	}

	job := g.Generate(context.Background(), generatorInput(1))
	doc, err := job.Result()

	assert.Nil(t, doc)
	var we *WorkerError
	require.ErrorAs(t, err, &we)
	assert.Contains(t, we.Reason, "nil font reference")
	var re *RenderError
	assert.False(t, errors.As(err, &re))
}

func TestGenerate_WaitAfterSharedContextCancel(t *testing.T) {
	gate := make(chan struct{})
	g := &Generator{
		log:      zap.NewNop(),
		renderer: &stubRenderer{gate: gate},
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := g.Generate(ctx, generatorInput(1))
	cancel()

	// Wait surfaces the caller's context error, which still counts as the
	// canceled outcome, not a render failure.
	_, err := job.Wait(ctx)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	var re *RenderError
	assert.False(t, errors.As(err, &re))

	close(gate)
	doc, err := job.Result()
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.True(t, IsCanceled(err))
}

func TestGenerate_ConcurrentJobsIndependentStreams(t *testing.T) {
	g := newTestGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job := g.Generate(context.Background(), generatorInput(2))

			last := -1
			for p := range job.Progress() {
				assert.GreaterOrEqual(t, p.Percent, last)
				last = p.Percent
			}
			_, err := job.Result()
			assert.NoError(t, err)
			assert.Equal(t, 100, last)
		}()
	}
	wg.Wait()
}

func TestGenerate_WaitHonorsCallerContext(t *testing.T) {
	g := newTestGenerator()

	job := g.Generate(context.Background(), generatorInput(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc, err := job.Wait(ctx)
	require.NoError(t, err)
	assert.NotNil(t, doc)
}
