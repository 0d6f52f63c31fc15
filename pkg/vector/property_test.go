package vector

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyTestDim = 8

// TestSimilarityInvariants uses property-based testing to verify similarity invariants
// These properties should ALWAYS hold true for any pair of same-length vectors
func TestSimilarityInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20 // Reduced from 100 for reasonable test time

	properties := gopter.NewProperties(parameters)

	vecGen := gen.SliceOfN(propertyTestDim, gen.Float64Range(-100, 100))

	// Property 1: Cosine similarity is symmetric
	properties.Property("cosine similarity is symmetric", prop.ForAll(
		func(a, b []float64) bool {
			ab, err1 := CosineSimilarity(a, b)
			ba, err2 := CosineSimilarity(b, a)
			if err1 != nil || err2 != nil {
				return false
			}
			return math.Abs(ab-ba) < 1e-9
		},
		vecGen,
		vecGen,
	))

	// Property 2: Self-similarity is 1 for any nonzero vector
	properties.Property("self-similarity is identity", prop.ForAll(
		func(a []float64) bool {
			sim, err := CosineSimilarity(a, a)
			if err != nil {
				return false
			}
			if Magnitude(a) == 0 {
				return sim == 0
			}
			return math.Abs(sim-1.0) < 1e-9
		},
		vecGen,
	))

	// Property 3: Similarity is bounded in [-1, 1]
	properties.Property("similarity is bounded", prop.ForAll(
		func(a, b []float64) bool {
			sim, err := CosineSimilarity(a, b)
			if err != nil {
				return false
			}
			return sim >= -1.0-1e-9 && sim <= 1.0+1e-9
		},
		vecGen,
		vecGen,
	))

	// Property 4: Positive scaling preserves similarity
	properties.Property("scaling invariance", prop.ForAll(
		func(a []float64, scale float64) bool {
			scaled := make([]float64, len(a))
			for i, v := range a {
				scaled[i] = v * scale
			}
			sim, err := CosineSimilarity(a, scaled)
			if err != nil {
				return false
			}
			if Magnitude(a) == 0 {
				return sim == 0
			}
			return math.Abs(sim-1.0) < 1e-6
		},
		vecGen,
		gen.Float64Range(0.1, 1000),
	))

	// Property 5: The similarity matrix is symmetric with unit diagonal
	properties.Property("matrix symmetry and diagonal", prop.ForAll(
		func(a, b, c []float64) bool {
			matrix, err := CosineSimilarityMatrix([][]float64{a, b, c})
			if err != nil {
				return false
			}
			for i := range matrix {
				if matrix[i][i] != 1.0 {
					return false
				}
				for j := range matrix[i] {
					if matrix[i][j] != matrix[j][i] {
						return false
					}
				}
			}
			return true
		},
		vecGen,
		vecGen,
		vecGen,
	))

	// Property 6: One-to-many agrees with pairwise similarity
	properties.Property("batch scoring agrees with pairwise", prop.ForAll(
		func(q, a, b []float64) bool {
			batch, err := CosineSimilarityOneToMany(q, [][]float64{a, b})
			if err != nil {
				return false
			}
			simA, _ := CosineSimilarity(q, a)
			simB, _ := CosineSimilarity(q, b)
			return math.Abs(batch[0]-simA) < 1e-9 && math.Abs(batch[1]-simB) < 1e-9
		},
		vecGen,
		vecGen,
		vecGen,
	))

	// Property 7: FindTopSimilar never exceeds k and is sorted descending
	properties.Property("top-k is capped and sorted", prop.ForAll(
		func(q []float64, k int) bool {
			targets := [][]float64{q, q, q, q, q}
			matches, err := FindTopSimilar(q, targets, k, -1.0)
			if err != nil {
				return false
			}
			if len(matches) > k {
				return false
			}
			for i := 1; i < len(matches); i++ {
				if matches[i-1].Similarity < matches[i].Similarity {
					return false
				}
			}
			return true
		},
		vecGen,
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
