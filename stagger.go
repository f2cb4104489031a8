package scrollfx

// Delay returns base + index*inc. There is no clamping; bounding the total
// sequence length is the caller's job, as is supplying a stable index.
func Delay(index int, base, inc float64) float64 {
	return base + float64(index)*inc
}

// StaggerPlan describes delays for Count items.
type StaggerPlan struct {
	BaseDelay float64
	Increment float64
	Count     int
}

// Delay returns the delay of item i.
func (p StaggerPlan) Delay(i int) float64 {
	return Delay(i, p.BaseDelay, p.Increment)
}

// Delays returns the delay of every item in order.
func (p StaggerPlan) Delays() []float64 {
	if p.Count <= 0 {
		return nil
	}
	out := make([]float64, p.Count)
	for i := range out {
		out[i] = p.Delay(i)
	}
	return out
}

// Total returns when the last item finishes if each runs for duration.
func (p StaggerPlan) Total(duration float64) float64 {
	if p.Count <= 0 {
		return 0
	}
	return p.Delay(p.Count-1) + duration
}
