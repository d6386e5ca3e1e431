// physics-bench runs headless physics scenes and reports step timing
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/lixenwraith/zoo-spree/physics"
	"github.com/lixenwraith/zoo-spree/status"
)

var (
	bodiesFlag  = flag.Int("bodies", 500, "Dynamic bodies in the pile")
	stepsFlag   = flag.Int("steps", 600, "Steps to run")
	seedFlag    = flag.Int64("seed", 1, "Random seed for body placement")
	profileFlag = flag.String("profile", "", "Profile mode: cpu, mem or empty")
)

const (
	timeStep           = 1.0 / 60
	velocityIterations = 6
	positionIterations = 2
)

func main() {
	flag.Parse()

	switch *profileFlag {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	y, ok := fallingBox()
	fmt.Printf("falling box: y=%.4f after 60 steps (deterministic=%v)\n", y, ok)
	if !ok {
		os.Exit(1)
	}

	pile(*bodiesFlag, *stepsFlag, *seedFlag)
}

// fallingBox drops a unit box under gravity twice and compares the results
func fallingBox() (float64, bool) {
	run := func() float64 {
		w := physics.NewWorld(physics.V(0, -10))
		defer w.Close()

		def := physics.DynamicBodyDef(physics.V(0, 0))
		h := w.CreateBody(&def)
		ref := w.BodyMut(h)
		ref.Get().CreateFastFixture(physics.NewBox(0.5, 0.5), 1)
		ref.Release()

		for i := 0; i < 60; i++ {
			w.Step(timeStep, velocityIterations, positionIterations)
		}
		b := w.Body(h)
		defer b.Release()
		return b.Get().Position().Y
	}
	a, b := run(), run()
	return a, a == b && !math.IsNaN(a)
}

// pile drops n random boxes and circles into a static bin and prints timing stats
func pile(n, steps int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	w := physics.NewWorld(physics.V(0, -10))
	defer w.Close()

	ground := physics.DefaultBodyDef()
	g := w.CreateBody(&ground)
	gref := w.BodyMut(g)
	bin, err := physics.NewLoop([]physics.Vec2{
		physics.V(-20, 40), physics.V(-20, 0), physics.V(20, 0), physics.V(20, 40),
	})
	if err != nil {
		panic(err)
	}
	gref.Get().CreateFastFixture(bin, 0)
	gref.Release()

	for i := 0; i < n; i++ {
		def := physics.DynamicBodyDef(physics.V(rng.Float64()*36-18, 2+rng.Float64()*60))
		h := w.CreateBody(&def)
		ref := w.BodyMut(h)
		var shape physics.Shape
		if i%2 == 0 {
			shape = physics.NewBox(0.2+rng.Float64()*0.3, 0.2+rng.Float64()*0.3)
		} else {
			shape = physics.NewCircle(physics.V(0, 0), 0.2+rng.Float64()*0.3)
		}
		ref.Get().CreateFastFixture(shape, 1)
		ref.Release()
	}

	stats := status.NewStats(status.NewRegistry())
	start := time.Now()
	for i := 0; i < steps; i++ {
		t := time.Now()
		w.Step(timeStep, velocityIterations, positionIterations)
		stats.RecordStep(time.Since(t))
	}
	stats.Sample(w)
	total := time.Since(start)

	fmt.Printf("pile: %d bodies, %d steps in %v (%.1f steps/s)\n", n, steps, total, float64(steps)/total.Seconds())
	fmt.Println(stats.Registry.Line())
}
