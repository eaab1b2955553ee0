package embedding

import (
	"fmt"
	"math"
)

// LengthMismatchError indicates two vectors of different dimensionality
// were compared. This should not occur with a single provider per request;
// callers substitute a zero similarity and log it rather than failing the
// ranking.
type LengthMismatchError struct {
	LenA, LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("vector length mismatch: %d vs %d", e.LenA, e.LenB)
}

// Cosine computes the cosine similarity of two equal-length vectors:
// dot(a,b) / (|a|*|b|), defined as 0 when either norm is 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &LengthMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (normA * normB), nil
}
