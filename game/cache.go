package game

// noiseCache holds each instance's time-independent noise sample
// Sample(position, texScale). Entries are valid only for the texScale and
// noise field they were computed with.
type noiseCache struct {
	base     []float64
	texScale float64
	valid    bool
}

func (c *noiseCache) reset(n int) {
	c.base = make([]float64, n)
	c.valid = false
}

func (c *noiseCache) invalidate() {
	c.valid = false
}

// validate reports whether the cache must be refilled for texScale and
// marks it valid for texScale from now on.
func (c *noiseCache) validate(texScale float64) (refresh bool) {
	if c.valid && c.texScale == texScale {
		return false
	}
	c.texScale = texScale
	c.valid = true
	return true
}
