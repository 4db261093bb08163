package game

import (
	"io"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lockin/anim"
	"lockin/config"
	"lockin/goal"
	"lockin/hud"
	"lockin/input"
	"lockin/particle"
	"lockin/perf"
	"lockin/quote"
	"lockin/viewport"
)

// maxDeltaTime caps the frame delta after stalls such as window drags.
const maxDeltaTime = 0.1

// Game runs the particle field in an ebiten window.
type Game struct {
	config config.Config
	logger *log.Logger

	field    *particle.Field
	queue    *anim.FrameQueue
	loop     *anim.Loop
	tracker  *input.Tracker
	poller   *input.Poller
	input    InputProvider
	view     *viewport.Controller
	quotes   *quote.Rotator
	renderer *Renderer
	monitor  *perf.Monitor

	goal    goal.Goal
	hasGoal bool

	// outside size reported by Layout, read by Update
	sizeMu         sync.Mutex
	outsideWidth   int
	outsideHeight  int
	startTime      time.Time
	lastUpdateTime time.Time
}

// NewGame wires the engine; the field is seeded on the first Update that
// knows the window size.
func NewGame(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := time.Now()
	seed := cfg.Field.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		config:         cfg,
		logger:         logger,
		field:          particle.NewField(rng),
		queue:          anim.NewFrameQueue(),
		input:          NewEbitenInput(),
		renderer:       NewRenderer(),
		quotes:         quote.NewRotator(quote.Builtin, cfg.Quotes.Interval, rng, now),
		startTime:      now,
		lastUpdateTime: now,
	}
	g.loop = anim.NewLoop(g.queue, g.frame)
	g.tracker = input.NewTracker(g.renderer.Panel())
	g.poller = input.NewPoller(g.tracker)

	opts := cfg.ViewportOptions(logger)
	opts.Resizer = g.renderer
	g.view = viewport.New(cfg.Sampler(), g.field, g.loop, opts)

	var profiler *perf.Profiler
	if cfg.Profiling.Enabled {
		profiler = perf.NewProfiler(cfg.Profiling.Dir, cfg.Profiling.Duration, cfg.Profiling.Cooldown, logger)
	}
	g.monitor = perf.NewMonitor(cfg.Profiling.FPSThreshold, cfg.Profiling.Cooldown, profiler, logger, now)
	g.monitor.Context = func() string {
		return "particles" + strconv.Itoa(g.field.Len())
	}
	return g
}

// frame is the animation loop body: one snapshot of the interaction, one
// advance, one repaint of the particle layer.
func (g *Game) frame(elapsed float64) {
	probe := g.tracker.Snapshot().Probe()
	g.field.Advance(elapsed, probe)
	g.renderer.Paint(g.field.Particles())
}

// Update settles the viewport, feeds input and delivers the animation frame.
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now
	if deltaTime > maxDeltaTime {
		deltaTime = maxDeltaTime
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		debugState := GetDebugState()
		debugState.ShowOverlay = !debugState.ShowOverlay
	}
	if g.hasGoal && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveCard(now)
	}

	width, height := g.outsideSize()
	if width > 0 && height > 0 {
		if !g.view.Mounted() {
			g.view.Mount(width, height)
		} else {
			g.view.Resize(width, height, now)
		}
		g.view.Tick(now)
		// a sparse field keeps animating; only a failed reseed blanks the layer
		if viewport.Blank(g.view.Err()) {
			g.renderer.ClearLayer()
		}
	}

	g.poller.Apply(g.input.Poll(width, height))
	g.queue.Flush(now.Sub(g.startTime))

	g.quotes.Update(now)
	g.monitor.Frame(now, deltaTime)
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	panel := hud.QuotePanel(g.quotes.Current())
	if g.hasGoal {
		panel = hud.GoalPanel(g.goal, time.Now())
	}
	g.renderer.Draw(screen, panel)
	if GetDebugState().ShowOverlay {
		g.drawDebug(screen)
	}
}

// Layout keeps the screen at the window size so mask pixels map 1:1.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sizeMu.Lock()
	g.outsideWidth, g.outsideHeight = outsideWidth, outsideHeight
	g.sizeMu.Unlock()
	return outsideWidth, outsideHeight
}

func (g *Game) outsideSize() (int, int) {
	g.sizeMu.Lock()
	defer g.sizeMu.Unlock()
	return g.outsideWidth, g.outsideHeight
}

// SetGoal shows a committed goal instead of the quotes, which stop rotating.
func (g *Game) SetGoal(gl goal.Goal) {
	g.goal = gl
	g.hasGoal = true
	g.quotes.Pause()
}

// ClearGoal brings the quotes back.
func (g *Game) ClearGoal() {
	g.goal = goal.Goal{}
	g.hasGoal = false
	g.quotes.Resume(time.Now())
}

func (g *Game) saveCard(now time.Time) {
	path, err := goal.SaveCard(g.config.CardDir, g.goal, now)
	if err != nil {
		g.logger.Error("card export failed", "err", err)
		return
	}
	g.logger.Info("card saved", "path", path)
}

// Close stops the loop and drops the interaction state.
func (g *Game) Close() {
	g.view.Unmount()
	g.tracker.Reset()
}
