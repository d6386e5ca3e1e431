package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/zoo-spree/input"
	"github.com/lixenwraith/zoo-spree/render"
	"github.com/lixenwraith/zoo-spree/status"
)

// DefaultFrameInterval is the render cadence
const DefaultFrameInterval = time.Second / 30

// Game is what the loop drives; one Step is one physics step
type Game interface {
	Name() string
	Step(in *input.State)
	Render(c *render.Canvas)
	Counters() status.WorldCounter
}

// Loop owns the frame cadence, input pumping and stats for one Game
type Loop struct {
	Canvas *render.Canvas
	Input  *input.State
	Game   Game
	Stats  *status.Stats
	Clock  Clock
	Steps  *FixedStep

	FrameInterval time.Duration
	HUD           bool

	// CrashHandler runs when the event poller panics; nil re-panics
	CrashHandler func(any)
}

// NewLoop wires a game to a canvas with a fixed physics step
func NewLoop(canvas *render.Canvas, in *input.State, game Game, stats *status.Stats, clock Clock, step time.Duration) *Loop {
	return &Loop{
		Canvas:        canvas,
		Input:         in,
		Game:          game,
		Stats:         stats,
		Clock:         clock,
		Steps:         NewFixedStep(step, clock),
		FrameInterval: DefaultFrameInterval,
		HUD:           true,
	}
}

// HandleEvent applies one terminal event; false means quit
func (l *Loop) HandleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		l.Canvas.Resize()
		l.Canvas.Screen().Sync()
	}
	cont := l.Input.HandleEvent(ev, l.Clock.Now())
	l.Steps.SetPaused(l.Input.Pause)
	return cont
}

// Frame runs the due physics steps and renders once
func (l *Loop) Frame() {
	l.Input.Tick(l.Clock.Now())

	n := l.Steps.Advance()
	for i := 0; i < n; i++ {
		start := time.Now()
		l.Game.Step(l.Input)
		l.Stats.RecordStep(time.Since(start))
	}
	l.Stats.Sample(l.Game.Counters())

	l.Canvas.Clear()
	l.Game.Render(l.Canvas)
	if l.HUD {
		l.drawHUD()
	}
	l.Stats.Frame()
	l.Canvas.Show()
}

func (l *Loop) drawHUD() {
	line := fmt.Sprintf("%s | %s", l.Game.Name(), l.Stats.Registry.Line())
	if l.Steps.IsPaused() {
		line += " | paused"
	}
	l.Canvas.DrawText(0, 0, line, render.RGBGray.Style())
}

// Run polls events and renders frames until quit, poller exit or ctx cancellation
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 256)
	go l.poll(ctx, events)

	ticker := time.NewTicker(l.FrameInterval)
	defer ticker.Stop()

	l.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !l.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			l.Frame()
		}
	}
}

// poll forwards screen events; PollEvent returns nil once the screen is finalized
func (l *Loop) poll(ctx context.Context, events chan<- tcell.Event) {
	defer func() {
		if r := recover(); r != nil {
			if l.CrashHandler == nil {
				panic(r)
			}
			l.CrashHandler(r)
		}
	}()
	defer close(events)

	screen := l.Canvas.Screen()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
