package catalog

import (
	"math/rand"

	"github.com/linkforge/linkforge/internal/domain"
)

// Catalog is the static table of candidate host platforms.
// It is populated once at startup and shared read-only across workers.
type Catalog struct {
	platforms []domain.Platform
}

// New creates a catalog from the given platforms.
func New(platforms []domain.Platform) *Catalog {
	return &Catalog{platforms: platforms}
}

// Default returns the built-in platform table.
func Default() *Catalog {
	return New([]domain.Platform{
		{Name: "Medium", BaseURL: "medium.com", Authority: 94, SuccessProbability: 0.92},
		{Name: "WordPress", BaseURL: "wordpress.com", Authority: 93, SuccessProbability: 0.94},
		{Name: "Blogger", BaseURL: "blogger.com", Authority: 89, SuccessProbability: 0.95},
		{Name: "Tumblr", BaseURL: "tumblr.com", Authority: 86, SuccessProbability: 0.96},
		{Name: "Reddit", BaseURL: "reddit.com", Authority: 99, SuccessProbability: 0.88},
		{Name: "Quora", BaseURL: "quora.com", Authority: 93, SuccessProbability: 0.90},
		{Name: "LinkedIn Articles", BaseURL: "linkedin.com", Authority: 98, SuccessProbability: 0.86},
		{Name: "Dev.to", BaseURL: "dev.to", Authority: 87, SuccessProbability: 0.93},
		{Name: "Hashnode", BaseURL: "hashnode.com", Authority: 85, SuccessProbability: 0.95},
		{Name: "Substack", BaseURL: "substack.com", Authority: 90, SuccessProbability: 0.91},
	})
}

// List returns a copy of all platforms.
func (c *Catalog) List() []domain.Platform {
	out := make([]domain.Platform, len(c.platforms))
	copy(out, c.platforms)
	return out
}

// Count returns the number of platforms in the catalog.
func (c *Catalog) Count() int {
	return len(c.platforms)
}

// Pick selects one platform uniformly at random.
func (c *Catalog) Pick(rng *rand.Rand) domain.Platform {
	return c.platforms[rng.Intn(len(c.platforms))]
}
