package vector

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is returned when vector dimensions don't match
var ErrDimensionMismatch = fmt.Errorf("vector dimensions mismatch")

// Match pairs a target index with its similarity to a query vector
type Match struct {
	Index      int
	Similarity float64
}

// DotProduct calculates the dot product of two vectors
// Formula: sum(a[i] * b[i])
// Returns error if vector dimensions don't match
func DotProduct(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Dot(a, b), nil
}

// Magnitude calculates the magnitude (L2 norm) of a vector
func Magnitude(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// CosineSimilarity calculates the cosine similarity between two vectors
// Returns a value between -1 (opposite) and 1 (identical)
// Formula: (a · b) / (||a|| * ||b||)
// Returns error if vector dimensions don't match
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	magA := Magnitude(a)
	magB := Magnitude(b)

	// Handle zero vectors
	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return floats.Dot(a, b) / (magA * magB), nil
}

// CosineSimilarityOneToMany calculates the cosine similarity between one query
// vector and many targets. The query magnitude is computed once and reused.
// A zero-magnitude target scores 0; a dimension mismatch on any target fails
// the whole call.
func CosineSimilarityOneToMany(query []float64, targets [][]float64) ([]float64, error) {
	magQ := Magnitude(query)

	results := make([]float64, len(targets))
	for i, target := range targets {
		if len(query) != len(target) {
			return nil, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(query), len(target))
		}
		magT := Magnitude(target)
		if magQ == 0 || magT == 0 {
			results[i] = 0
			continue
		}
		results[i] = floats.Dot(query, target) / (magQ * magT)
	}

	return results, nil
}

// CosineSimilarityMatrix calculates the pairwise cosine similarity matrix for
// a set of vectors. The result is symmetric with 1.0 on the diagonal; only the
// upper triangle is computed and mirrored.
// Returns error if any pair of vectors has mismatched dimensions.
func CosineSimilarityMatrix(vectors [][]float64) ([][]float64, error) {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim, err := CosineSimilarity(vectors[i], vectors[j])
			if err != nil {
				return nil, err
			}
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	return matrix, nil
}

// FindTopSimilar returns up to k targets whose cosine similarity to the query
// meets the threshold, sorted by similarity descending. Ties keep the input
// order. k <= 0 or an empty target set returns no matches.
func FindTopSimilar(query []float64, targets [][]float64, k int, threshold float64) ([]Match, error) {
	if k <= 0 || len(targets) == 0 {
		return nil, nil
	}

	sims, err := CosineSimilarityOneToMany(query, targets)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(sims))
	for i, sim := range sims {
		if sim >= threshold {
			matches = append(matches, Match{Index: i, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches, nil
}
