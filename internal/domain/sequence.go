package domain

// Shuffle returns a deterministic permutation of items keyed by seed.
// Every participant of a timed event runs the same shuffle client-side,
// so the output must be bit-for-bit identical across processes: the
// generator below is fixed and must not be swapped for math/rand.
func Shuffle[T any](items []T, seed string) []T {
	out := make([]T, len(items))
	copy(out, items)

	g := lcg{state: int64(hashSeed(seed))}
	for i := len(out) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// hashSeed folds the seed's code points into a 32-bit signed hash
// (h = h*31 + cp with wraparound).
func hashSeed(seed string) int32 {
	var h int32
	for _, r := range seed {
		h = (h << 5) - h + int32(r)
	}
	return h
}

// lcg is a small linear congruential generator. The constants match the
// sequence participants' clients already produce, so the shared ordering
// survives reimplementation on either side.
type lcg struct {
	state int64
}

// next yields a float in [0, 1).
func (g *lcg) next() float64 {
	g.state = (g.state*9301 + 49297) % 233280
	if g.state < 0 {
		g.state += 233280
	}
	return float64(g.state) / 233280
}
