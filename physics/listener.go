package physics

import "github.com/ByteArena/box2d"

// ContactListener receives contact events during Step
// Callbacks run while the world is locked: creating or destroying entities panics there
type ContactListener interface {
	BeginContact(c Contact)
	EndContact(c Contact)
	PreSolve(c ContactMut, oldManifold Manifold)
	PostSolve(c ContactMut, impulse *ContactImpulse)
}

// NopContactListener implements ContactListener with no-ops; embed it to override a subset
type NopContactListener struct{}

func (NopContactListener) BeginContact(Contact)                  {}
func (NopContactListener) EndContact(Contact)                    {}
func (NopContactListener) PreSolve(ContactMut, Manifold)         {}
func (NopContactListener) PostSolve(ContactMut, *ContactImpulse) {}

// FixtureInfo describes one side of a potential contact to a ContactFilter
type FixtureInfo struct {
	Body     BodyHandle
	Fixture  FixtureHandle
	Filter   Filter
	IsSensor bool
}

// ContactFilter decides whether two fixtures may form a contact
type ContactFilter interface {
	ShouldCollide(a, b FixtureInfo) bool
}

// ContactFilterFunc adapts a function to ContactFilter
type ContactFilterFunc func(a, b FixtureInfo) bool

func (f ContactFilterFunc) ShouldCollide(a, b FixtureInfo) bool {
	return f(a, b)
}

// DefaultShouldCollide applies group and category/mask rules
func DefaultShouldCollide(a, b Filter) bool {
	if a.GroupIndex == b.GroupIndex && a.GroupIndex != 0 {
		return a.GroupIndex > 0
	}
	return a.MaskBits&b.CategoryBits != 0 && a.CategoryBits&b.MaskBits != 0
}

type contactListenerLink struct {
	user ContactListener
}

func (l *contactListenerLink) BeginContact(c box2d.B2ContactInterface) {
	l.user.BeginContact(Contact{native: c})
}

func (l *contactListenerLink) EndContact(c box2d.B2ContactInterface) {
	l.user.EndContact(Contact{native: c})
}

func (l *contactListenerLink) PreSolve(c box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
	l.user.PreSolve(ContactMut{Contact{native: c}}, oldManifold)
}

func (l *contactListenerLink) PostSolve(c box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	l.user.PostSolve(ContactMut{Contact{native: c}}, impulse)
}

type contactFilterLink struct {
	user ContactFilter
}

func fixtureInfo(f *box2d.B2Fixture) FixtureInfo {
	bh, fh := fixtureHandleOf(f)
	return FixtureInfo{
		Body:     bh,
		Fixture:  fh,
		Filter:   f.GetFilterData(),
		IsSensor: f.IsSensor(),
	}
}

func (l *contactFilterLink) ShouldCollide(a, b *box2d.B2Fixture) bool {
	return l.user.ShouldCollide(fixtureInfo(a), fixtureInfo(b))
}

// SetContactListener installs l for subsequent steps; nil removes the listener
func (w *World[B, F, J]) SetContactListener(l ContactListener) {
	w.mustOpen()
	if l == nil {
		w.listener = nil
		w.native.SetContactListener(nil)
		return
	}
	w.listener = &contactListenerLink{user: l}
	w.native.SetContactListener(w.listener)
}

// SetContactFilter replaces the category/mask filter; nil restores it
func (w *World[B, F, J]) SetContactFilter(f ContactFilter) {
	w.mustOpen()
	if f == nil {
		w.filter = nil
		w.native.SetContactFilter(&box2d.B2ContactFilter{})
		return
	}
	w.filter = &contactFilterLink{user: f}
	w.native.SetContactFilter(w.filter)
}
