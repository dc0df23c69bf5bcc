package kquant

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxIters is the default maximum number of Lloyd
// iterations for a single k-means run.
const DefaultMaxIters = 300

// DefaultAttempts is the default number of independent
// k-means++ initializations tried by Quantize.
const DefaultAttempts = 10

// Pixels are split into chunks of this size for the
// assignment step. The chunking does not depend on the
// number of workers, so sums are always merged in the same
// order.
const assignChunkSize = 4096

// Clustering is the outcome of a k-means run.
type Clustering struct {
	// Centroids contains exactly K unrounded colors.
	Centroids []Color

	// Assignments maps every pixel index to an index in
	// Centroids.
	Assignments []int

	// Iterations is the number of assignment passes which
	// changed at least one assignment.
	Iterations int

	// Converged is false if the assignments were still
	// changing when the run hit the iteration limit.
	Converged bool

	// Cost is the sum of squared distances from every pixel
	// to its centroid.
	Cost float64

	// CostHistory records the cost after each assignment
	// pass of the kept run.
	CostHistory []float64
}

// Quantize clusters pixels into k colors using k-means++
// initialization followed by Lloyd's algorithm.
//
// The seed fully determines the result, so identical
// inputs always produce identical clusterings.
//
// If c is nil, defaults are used. The Clusters and Seed
// fields of c are ignored in favor of the arguments.
func Quantize(pixels Pixels, k int, seed int64, c *Config) (*Clustering, error) {
	return QuantizeRand(pixels, k, rand.New(rand.NewSource(seed)), c)
}

// QuantizeRand is like Quantize, but draws from an existing
// random source.
func QuantizeRand(pixels Pixels, k int, rng *rand.Rand, c *Config) (*Clustering, error) {
	if k < 1 || k > len(pixels) {
		return nil, &InvalidClusterCountError{K: k, NumPixels: len(pixels)}
	}
	if c == nil {
		c = &Config{}
	}
	logger := c.logger()

	var best *Clustering
	for attempt := 0; attempt < c.attempts(); attempt++ {
		clusters := newColorClusters(pixels, kmeansPlusPlusInit(pixels, k, rng), c.workers())
		result := clusters.Run(c.maxIters(), logger)
		logger.WithFields(logrus.Fields{
			"attempt":    attempt,
			"iterations": result.Iterations,
			"converged":  result.Converged,
			"cost":       result.Cost,
		}).Debug("finished k-means run")
		if best == nil || result.Cost < best.Cost {
			best = result
		}
	}
	return best, nil
}

// Substitute replaces every pixel with the rounded color
// of its assigned centroid.
func Substitute(pixels Pixels, centroids []Color, assignments []int) (Pixels, error) {
	if len(assignments) != len(pixels) {
		return nil, &ShapeMismatchError{Expected: len(pixels), Actual: len(assignments)}
	}
	rounded := make([]Color, len(centroids))
	for i, c := range centroids {
		rounded[i] = c.Quantized()
	}
	res := make(Pixels, len(pixels))
	for i, a := range assignments {
		if a < 0 || a >= len(rounded) {
			return nil, &ShapeMismatchError{Expected: len(rounded), Actual: a}
		}
		res[i] = rounded[a]
	}
	return res, nil
}

type colorClusters struct {
	Centers     []Color
	AllColors   Pixels
	Assignments []int

	numWorkers int
}

func newColorClusters(allColors Pixels, centers []Color, numWorkers int) *colorClusters {
	assignments := make([]int, len(allColors))
	for i := range assignments {
		assignments[i] = -1
	}
	return &colorClusters{
		Centers:     centers,
		AllColors:   allColors,
		Assignments: assignments,
		numWorkers:  numWorkers,
	}
}

// Run alternates assignment and update steps until the
// assignments stop changing or maxIters updates are done.
// A run stopped by the limit ends with one more assignment
// pass, so the returned labels always match the centers.
func (c *colorClusters) Run(maxIters int, logger logrus.FieldLogger) *Clustering {
	res := &Clustering{}
	for i := 0; i < maxIters; i++ {
		stats := c.Assign()
		res.CostHistory = append(res.CostHistory, stats.Cost)
		logger.WithFields(logrus.Fields{
			"iteration": i,
			"changed":   stats.Changed,
			"cost":      stats.Cost,
		}).Trace("k-means assignment pass")
		if stats.Changed == 0 {
			res.Converged = true
			res.Cost = stats.Cost
			break
		}
		c.Update(stats)
		res.Iterations++
	}
	if !res.Converged {
		// Relabel against the final centers without moving them.
		stats := c.Assign()
		res.CostHistory = append(res.CostHistory, stats.Cost)
		res.Converged = stats.Changed == 0
		res.Cost = stats.Cost
	}
	res.Centroids = append([]Color{}, c.Centers...)
	res.Assignments = c.Assignments
	return res
}

type assignStats struct {
	Sums    []Color
	Counts  []int
	Cost    float64
	Changed int
}

func newAssignStats(numCenters int) *assignStats {
	return &assignStats{
		Sums:   make([]Color, numCenters),
		Counts: make([]int, numCenters),
	}
}

func (a *assignStats) merge(other *assignStats) {
	for i, s := range other.Sums {
		a.Sums[i] = a.Sums[i].Add(s)
		a.Counts[i] += other.Counts[i]
	}
	a.Cost += other.Cost
	a.Changed += other.Changed
}

// Assign moves every color to its nearest center and
// accumulates the statistics needed by Update.
func (c *colorClusters) Assign() *assignStats {
	numChunks := (len(c.AllColors) + assignChunkSize - 1) / assignChunkSize
	chunkStats := make([]*assignStats, numChunks)

	var g errgroup.Group
	g.SetLimit(c.numWorkers)
	for i := 0; i < numChunks; i++ {
		chunk := i
		g.Go(func() error {
			start := chunk * assignChunkSize
			end := start + assignChunkSize
			if end > len(c.AllColors) {
				end = len(c.AllColors)
			}
			chunkStats[chunk] = c.assignRange(start, end)
			return nil
		})
	}
	g.Wait()

	total := newAssignStats(len(c.Centers))
	for _, s := range chunkStats {
		total.merge(s)
	}
	return total
}

func (c *colorClusters) assignRange(start, end int) *assignStats {
	stats := newAssignStats(len(c.Centers))
	for i := start; i < end; i++ {
		co := c.AllColors[i]
		closestIdx, closestDist := nearestCenter(c.Centers, co)
		if c.Assignments[i] != closestIdx {
			c.Assignments[i] = closestIdx
			stats.Changed++
		}
		stats.Sums[closestIdx] = stats.Sums[closestIdx].Add(co)
		stats.Counts[closestIdx]++
		stats.Cost += closestDist
	}
	return stats
}

// Update moves every non-empty center to the mean of its
// colors. Empty centers are left where they are.
func (c *colorClusters) Update(stats *assignStats) {
	for i, sum := range stats.Sums {
		if count := stats.Counts[i]; count > 0 {
			c.Centers[i] = sum.Scale(1 / float64(count))
		}
	}
}

// nearestCenter finds the closest center, preferring the
// lowest index on ties.
func nearestCenter(centers []Color, co Color) (int, float64) {
	closestIdx := 0
	closestDist := co.DistSquared(centers[0])
	for i := 1; i < len(centers); i++ {
		if d := co.DistSquared(centers[i]); d < closestDist {
			closestDist = d
			closestIdx = i
		}
	}
	return closestIdx, closestDist
}

func kmeansPlusPlusInit(allColors Pixels, numCenters int, rng *rand.Rand) []Color {
	centers := make([]Color, numCenters)
	centers[0] = allColors[rng.Intn(len(allColors))]
	dists := newCenterDistances(allColors, centers[0])
	for i := 1; i < numCenters; i++ {
		sampleIdx := dists.Sample(rng)
		centers[i] = allColors[sampleIdx]
		dists.Update(centers[i])
	}
	return centers
}

type centerDistances struct {
	AllColors   Pixels
	Distances   []float64
	DistanceSum float64
}

func newCenterDistances(allColors Pixels, center Color) *centerDistances {
	dists := make([]float64, len(allColors))
	sum := 0.0
	for i, c := range allColors {
		dists[i] = c.DistSquared(center)
		sum += dists[i]
	}
	return &centerDistances{
		AllColors:   allColors,
		Distances:   dists,
		DistanceSum: sum,
	}
}

func (c *centerDistances) Update(newCenter Color) {
	c.DistanceSum = 0
	for i, co := range c.AllColors {
		d := co.DistSquared(newCenter)
		if d < c.Distances[i] {
			c.Distances[i] = d
		}
		c.DistanceSum += c.Distances[i]
	}
}

// Sample picks an index with probability proportional to
// its distance. If every color already coincides with a
// center, the pick is uniform.
func (c *centerDistances) Sample(rng *rand.Rand) int {
	if c.DistanceSum <= 0 {
		return rng.Intn(len(c.AllColors))
	}
	sample := rng.Float64() * c.DistanceSum
	idx := -1
	for i, dist := range c.Distances {
		if dist <= 0 {
			continue
		}
		idx = i
		sample -= dist
		if sample < 0 {
			break
		}
	}
	return idx
}
