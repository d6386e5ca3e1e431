package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry holds the frame metrics shown in the HUD
// The game loop writes, the renderer reads; both sides cache pointers
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Line renders every metric as "key=value" pairs in key order
func (r *Registry) Line() string {
	var b strings.Builder
	for k, v := range r.Ints.All() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", k, v.Load())
	}
	for k, v := range r.Floats.All() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%.2f", k, v.Get())
	}
	return b.String()
}
