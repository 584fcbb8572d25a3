package sim

import "math/rand"

// AccessPattern selects the page-reference behavior of a generator.
type AccessPattern string

const (
	// PatternRandom draws every reference uniformly over the page range.
	PatternRandom AccessPattern = "random"
	// PatternSequential walks the page range in order, wrapping at the end.
	PatternSequential AccessPattern = "sequential"
	// PatternLocality concentrates references inside a fixed hotspot window.
	// This is the default pattern.
	PatternLocality AccessPattern = "locality"
)

// validAccessPatterns maps accepted access pattern strings.
var validAccessPatterns = map[AccessPattern]bool{
	PatternRandom:     true,
	PatternSequential: true,
	PatternLocality:   true,
	"":                true, // empty defaults to locality
}

// IsValidAccessPattern returns true if the given pattern string is recognized.
func IsValidAccessPattern(pattern string) bool {
	return validAccessPatterns[AccessPattern(pattern)]
}

// PageGenerator produces an infinite stream of page indices in [0, pageCount).
// Generators are stateful and not restartable; reconstruct to replay a stream.
// Next never fails.
type PageGenerator interface {
	Next() int
}

// NewPageGenerator constructs the generator variant for the given pattern.
// pageCount is coerced to >= 1. An empty pattern selects locality.
// For the locality variant the hotspot window is fixed at construction:
// size = max(1, round(pageCount*hotspotFrac)), start drawn once uniformly
// in [0, pageCount-size] (0 when that range is empty).
func NewPageGenerator(pageCount int, rng *rand.Rand, pattern AccessPattern, hotspotFrac, hotspotProb float64) PageGenerator {
	pages := clampMinInt(pageCount, 1)

	switch pattern {
	case PatternRandom:
		return &randomGenerator{pageCount: pages, rng: rng}
	case PatternSequential:
		return &sequentialGenerator{pageCount: pages}
	default:
		size := clampMinInt(roundToInt(float64(pages)*hotspotFrac), 1)
		maxStart := pages - size
		start := 0
		if maxStart > 0 {
			// inclusive upper bound: start may land flush against the end
			start = rng.Intn(maxStart + 1)
		}
		return &localityGenerator{
			pageCount:    pages,
			rng:          rng,
			hotspotStart: start,
			hotspotSize:  size,
			hotspotProb:  hotspotProb,
		}
	}
}

// randomGenerator draws uniformly over the full page range on every call.
type randomGenerator struct {
	pageCount int
	rng       *rand.Rand
}

func (g *randomGenerator) Next() int {
	return g.rng.Intn(g.pageCount)
}

// sequentialGenerator walks pages in order using a monotonically
// increasing counter. Needs no random source.
type sequentialGenerator struct {
	pageCount int
	seqIndex  int
}

func (g *sequentialGenerator) Next() int {
	idx := g.seqIndex % g.pageCount
	g.seqIndex++
	return idx
}

// localityGenerator returns a hotspot page with probability hotspotProb,
// otherwise a uniform draw over the full range. The hotspot window is fixed
// for the generator's lifetime; offsets wrap modulo the page count.
type localityGenerator struct {
	pageCount    int
	rng          *rand.Rand
	hotspotStart int
	hotspotSize  int
	hotspotProb  float64
}

func (g *localityGenerator) Next() int {
	if g.rng.Float64() < g.hotspotProb {
		return (g.hotspotStart + g.rng.Intn(g.hotspotSize)) % g.pageCount
	}
	return g.rng.Intn(g.pageCount)
}
