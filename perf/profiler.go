// Package perf measures frame rate and captures profiles when it drops.
package perf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrCooldown       = errors.New("perf: capture on cooldown")
	ErrAlreadyRunning = errors.New("perf: already profiling")
)

// Profiler writes a CPU profile and an execution trace side by side.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	logger          *log.Logger

	// sleep waits out the capture; replaced in tests
	sleep func(time.Duration)
}

// NewProfiler creates a profiler writing into dir.
func NewProfiler(dir string, duration, cooldown time.Duration, logger *log.Logger) *Profiler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Profiler{
		captureCooldown: cooldown,
		profilesDir:     dir,
		captureDuration: duration,
		logger:          logger,
		sleep:           time.Sleep,
	}
}

// CaptureProfile starts a background capture named after reason. It returns
// ErrCooldown or ErrAlreadyRunning instead of stacking captures. done, when
// not nil, is closed once both files are written.
func (p *Profiler) CaptureProfile(reason string, done chan<- struct{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrCooldown, time.Since(p.lastCaptureTime).Round(time.Second))
	}
	if p.isProfiling {
		return ErrAlreadyRunning
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("fps-drop-%s-%s", timestamp, reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
			if done != nil {
				close(done)
			}
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Error("cpu profile failed", "err", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Error("trace failed", "err", err)
			}
		}()
		wg.Wait()

		p.analyzeProfile(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	p.sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", "path", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	p.sleep(p.captureDuration)
	trace.Stop()

	p.logger.Info("trace saved", "path", tracePath)
	return nil
}

// analyzeProfile logs where the profile went and the heap at capture time.
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Warn("could not analyze profile", "err", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("profile captured",
		"path", profilePath,
		"size_kb", info.Size()/1024,
		"view", "go tool pprof -http=:8080 "+profilePath,
		"alloc_kb", m.Alloc/1024,
		"sys_kb", m.Sys/1024,
		"num_gc", m.NumGC,
		"heap_objects", m.HeapObjects,
	)
}

// IsProfiling returns whether a capture is in progress.
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
