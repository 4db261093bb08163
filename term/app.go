package term

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"lockin/anim"
	"lockin/config"
	"lockin/input"
	"lockin/particle"
	"lockin/quote"
	"lockin/viewport"
)

// FrameInterval paces the terminal at roughly 60 frames per second.
const FrameInterval = 16 * time.Millisecond

// Options configure an App.
type Options struct {
	Config config.Config
	Clock  anim.Clock
	Rand   *rand.Rand
	Logger *log.Logger
}

// App drives the particle field on a tcell screen.
type App struct {
	screen tcell.Screen
	canvas *Canvas
	clock  anim.Clock
	logger *log.Logger

	field   *particle.Field
	queue   *anim.FrameQueue
	pump    *anim.Pump
	loop    *anim.Loop
	tracker *input.Tracker
	view    *viewport.Controller
	quotes  *quote.Rotator

	quoteStyle tcell.Style
}

// NewApp wires the engine to an initialized screen.
func NewApp(screen tcell.Screen, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = anim.SystemClock{}
	}
	if opts.Rand == nil {
		seed := opts.Config.Field.Seed
		if seed == 0 {
			seed = opts.Clock.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	a := &App{
		screen:     screen,
		clock:      opts.Clock,
		logger:     opts.Logger,
		field:      particle.NewField(opts.Rand),
		queue:      anim.NewFrameQueue(),
		quoteStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	}
	cols, rows := screen.Size()
	a.canvas = NewCanvas(cols, rows)
	a.pump = anim.NewPump(a.queue, a.clock)
	a.loop = anim.NewLoop(a.queue, a.frame)
	a.tracker = input.NewTracker(input.HitFunc(a.onQuote))
	a.view = viewport.New(opts.Config.Sampler(), a.field, a.loop, opts.Config.ViewportOptions(opts.Logger))
	a.quotes = quote.NewRotator(quote.Builtin, opts.Config.Quotes.Interval, opts.Rand, a.clock.Now())
	return a
}

// Start seeds the field for the current terminal size.
func (a *App) Start() error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	w, h := a.canvas.PixelSize()
	return a.view.Mount(w, h)
}

// Stop tears the engine down. The screen is left to the caller.
func (a *App) Stop() {
	a.view.Unmount()
	a.tracker.Reset()
}

// HandleEvent applies one terminal event. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		a.tracker.PointerMove(float64(col*CellWidth+CellWidth/2), float64(row*CellHeight+CellHeight/2))

	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.canvas.Resize(cols, rows)
		a.screen.Sync()
		w, h := a.canvas.PixelSize()
		a.view.Resize(w, h, a.clock.Now())
	}
	return true
}

// Step runs one device frame: settle resizes, deliver the animation frame,
// refresh the quote and show the screen.
func (a *App) Step() {
	now := a.clock.Now()
	a.view.Tick(now)
	a.pump.Tick()
	if a.quotes.Update(now) || !a.loop.Running() {
		a.drawQuote()
	}
	a.screen.Show()
}

func (a *App) frame(elapsed float64) {
	probe := a.tracker.Snapshot().Probe()
	a.field.Advance(elapsed, probe)

	a.canvas.Clear()
	for i := range a.field.Particles() {
		p := &a.field.Particles()[i]
		a.canvas.Plot(p.Pos.X, p.Pos.Y, p.Color(), p.Interacting)
	}
	a.canvas.Flush(a.screen)
	a.drawQuote()
}

// drawQuote writes the current quote centered on the last row.
func (a *App) drawQuote() {
	cols, rows := a.screen.Size()
	if rows == 0 {
		return
	}
	q := a.quotes.Current()
	line := []rune("\"" + q.Text + "\" - " + q.Author)
	if len(line) > cols {
		line = line[:max(0, cols)]
	}
	start := (cols - len(line)) / 2
	for x := 0; x < cols; x++ {
		a.screen.SetContent(x, rows-1, ' ', nil, a.quoteStyle)
	}
	for i, r := range line {
		a.screen.SetContent(start+i, rows-1, r, nil, a.quoteStyle)
	}
}

// onQuote reports whether a surface pixel lies on the quote row.
func (a *App) onQuote(x, y float64) bool {
	_, rows := a.screen.Size()
	return rows > 0 && int(y)/CellHeight == rows-1 && x >= 0
}

func (a *App) reportStart(err error) {
	switch {
	case viewport.Blank(err):
		a.logger.Warn("starting without particles", "err", err)
	case err != nil:
		a.logger.Warn("starting with a sparse field", "err", err)
	}
}

// Run polls events on a goroutine and steps on a ticker until the user quits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.reportStart(a.Start())
	defer a.Stop()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
		}
	}
}

// Field exposes the particle field, for the debug line and tests.
func (a *App) Field() *particle.Field { return a.field }

// Tracker exposes the interaction state.
func (a *App) Tracker() *input.Tracker { return a.tracker }

// Viewport exposes the sizing controller.
func (a *App) Viewport() *viewport.Controller { return a.view }

// Loop exposes the animation loop.
func (a *App) Loop() *anim.Loop { return a.loop }
