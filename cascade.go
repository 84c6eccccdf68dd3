package audiofilter

// biquad is one normalised section with transposed direct-form II state.
//
//	y  = b0*x + d0
//	d0 = b1*x - a1*y + d1
//	d1 = b2*x - a2*y
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	d0, d1 float64
}

func newBiquad(s Section) biquad {
	inv := 1 / s.A0
	return biquad{
		b0: s.B0 * inv,
		b1: s.B1 * inv,
		b2: s.B2 * inv,
		a1: s.A1 * inv,
		a2: s.A2 * inv,
	}
}

func (q *biquad) processBlock(buf []float64) {
	b0, b1, b2 := q.b0, q.b1, q.b2
	a1, a2 := q.a1, q.a2
	d0, d1 := q.d0, q.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	q.d0, q.d1 = d0, d1
}

// cascade runs sections in series; each section filters the whole block before the
// next one sees it.
type cascade struct {
	stages []biquad
}

func newCascade(sections []Section) *cascade {
	c := &cascade{stages: make([]biquad, len(sections))}
	for i, s := range sections {
		c.stages[i] = newBiquad(s)
	}
	return c
}

func (c *cascade) processBlock(buf []float64) {
	for i := range c.stages {
		c.stages[i].processBlock(buf)
	}
}
