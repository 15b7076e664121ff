package domain

// Platform is a candidate host site for simulated link placement.
// Platforms are loaded once into the catalog at startup and shared
// read-only across all workers.
type Platform struct {
	// Name uniquely identifies the platform.
	Name string

	// BaseURL is the host part used when synthesizing source URLs.
	// Example: medium.com
	BaseURL string

	// Authority is the nominal domain authority score.
	Authority int

	// SuccessProbability is the chance in (0,1] that a placement
	// attempt on this platform succeeds.
	SuccessProbability float64
}
