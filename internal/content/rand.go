package content

// Rand is the linear congruential generator the worksheet engine has always
// used. Problems are regenerated independently on the client and on the
// validation server from the same seed, so the sequence is part of the wire
// contract and cannot be swapped for another PRNG.
type Rand struct {
	seed int64
}

// NewRand seeds a generator. Seeds are produced by HashCode over a
// deterministic key string ("addition-6-easy-3", "assessment-<child>-<op>").
func NewRand(seed int64) *Rand {
	return &Rand{seed: seed}
}

// Next returns the next value in [0,1).
func (r *Rand) Next() float64 {
	r.seed = (r.seed*9301 + 49297) % 233280
	return float64(r.seed) / 233280
}

// IntN returns an integer in [0,n).
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() * float64(n))
}

// Between returns an integer in [min,max] inclusive.
func (r *Rand) Between(min, max int) int {
	if max < min {
		max = min
	}
	return min + r.IntN(max-min+1)
}

// HashCode hashes a key string to a non-negative seed, using the 32-bit
// rolling hash the original engine uses (h = h*31 + c, truncated).
func HashCode(s string) int64 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	if h < 0 {
		h = -h
	}
	return int64(h)
}
