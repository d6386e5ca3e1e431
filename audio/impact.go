package audio

import (
	"math"
	"time"

	"github.com/lixenwraith/zoo-spree/physics"
)

const (
	// DefaultImpactInterval is the minimum gap between two impact sounds
	DefaultImpactInterval = 80 * time.Millisecond
	// minImpactSpeed filters resting and sliding contacts
	minImpactSpeed = 0.5
	// fullImpactSpeed maps to strength 1
	fullImpactSpeed = 10.0
)

// ImpactPlayer plays an impact of strength in [0,1]
type ImpactPlayer interface {
	PlayImpact(strength float64)
}

// BodyProbe reports a body's velocity and whether it is dynamic
type BodyProbe interface {
	Motion(h physics.BodyHandle) (velocity physics.Vec2, dynamic bool)
}

// worldProbe reads bodies through the world's pool without borrowing
type worldProbe[B, F, J any] struct {
	w *physics.World[B, F, J]
}

// WorldProbe adapts a world to BodyProbe
func WorldProbe[B, F, J any](w *physics.World[B, F, J]) BodyProbe {
	return worldProbe[B, F, J]{w: w}
}

func (p worldProbe[B, F, J]) Motion(h physics.BodyHandle) (physics.Vec2, bool) {
	ref, ok := p.w.TryBody(h)
	if !ok {
		return physics.Vec2{}, false
	}
	defer ref.Release()
	b := ref.Get()
	return b.LinearVelocity(), b.Type() == physics.DynamicBody
}

// ImpactListener plays a sound when two dynamic bodies start touching
type ImpactListener struct {
	physics.NopContactListener

	player   ImpactPlayer
	probe    BodyProbe
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

// NewImpactListener builds a listener rate-limited to DefaultImpactInterval
func NewImpactListener(player ImpactPlayer, probe BodyProbe) *ImpactListener {
	return &ImpactListener{
		player:   player,
		probe:    probe,
		interval: DefaultImpactInterval,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used for rate limiting
func (l *ImpactListener) SetClock(now func() time.Time) {
	l.now = now
}

// SetInterval sets the minimum gap between impacts
func (l *ImpactListener) SetInterval(d time.Duration) {
	l.interval = d
}

// BeginContact converts the relative speed of the pair into an impact strength
func (l *ImpactListener) BeginContact(c physics.Contact) {
	a, _ := c.FixtureA()
	b, _ := c.FixtureB()
	if a == b {
		return
	}
	va, da := l.probe.Motion(a)
	vb, db := l.probe.Motion(b)
	if !da || !db {
		return
	}

	speed := math.Hypot(va.X-vb.X, va.Y-vb.Y)
	if speed < minImpactSpeed {
		return
	}

	now := l.now()
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return
	}
	l.last = now
	l.player.PlayImpact(math.Min(1, speed/fullImpactSpeed))
}
