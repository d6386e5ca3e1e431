package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// userData is the heap block an engine object's user-data slot points at
// Only the owning wrapper writes the slot: install on construction, detach on teardown
type userData[H comparable, D any] struct {
	handle H
	custom D
}

func (u *userData[H, D]) entityHandle() H {
	return u.handle
}

// linked is implemented by every userData instantiation with handle type H
// Reverse lookups go through it so they need not know the custom payload type
type linked[H comparable] interface {
	entityHandle() H
}

func newUserData[H comparable, D any](h H, custom D) *userData[H, D] {
	return &userData[H, D]{handle: h, custom: custom}
}

// userDataSlot is the engine-side storage all three entity kinds expose
type userDataSlot interface {
	GetUserData() interface{}
	SetUserData(data interface{})
}

func install[H comparable, D any](slot userDataSlot, u *userData[H, D]) {
	slot.SetUserData(u)
}

// detach clears the engine slot before the block is dropped
func detach(slot userDataSlot) {
	slot.SetUserData(nil)
}

func handleOf[H comparable](slot userDataSlot) H {
	l, ok := slot.GetUserData().(linked[H])
	if !ok {
		panic(fmt.Errorf("%T: %w", slot, ErrForeignUserData))
	}
	return l.entityHandle()
}

func bodyHandleOf(b *box2d.B2Body) BodyHandle {
	return handleOf[BodyHandle](b)
}

func jointHandleOf(j box2d.B2JointInterface) JointHandle {
	return handleOf[JointHandle](j)
}

// fixtureHandleOf resolves both the owning body and the fixture
func fixtureHandleOf(f *box2d.B2Fixture) (BodyHandle, FixtureHandle) {
	return bodyHandleOf(f.GetBody()), handleOf[FixtureHandle](f)
}
