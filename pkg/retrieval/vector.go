package retrieval

import (
	"encoding/json"
	"math"
	"strings"
)

// CoerceVector turns whatever the vector store handed back into a float32
// slice. pgvector columns normally scan into []float32, but values that went
// through JSON or a text column arrive as []float64, []interface{}, or a
// "[0.1, 0.2]" string. Returns false when nothing numeric can be recovered.
func CoerceVector(raw interface{}) ([]float32, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case []float32:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case []float64:
		if len(v) == 0 {
			return nil, false
		}
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, true
	case []interface{}:
		if len(v) == 0 {
			return nil, false
		}
		out := make([]float32, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out[i] = float32(f)
		}
		return out, true
	case string:
		return parseVectorString(v)
	default:
		return nil, false
	}
}

// parseVectorString evaluates the "[0.1, 0.2, ...]" literal form pgvector and
// JSON both produce.
func parseVectorString(s string) ([]float32, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false
	}
	var values []float64
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, false
	}
	if len(values) == 0 {
		return nil, false
	}
	out := make([]float32, len(values))
	for i, f := range values {
		out[i] = float32(f)
	}
	return out, true
}

// CosineSimilarity between two vectors. Zero-norm vectors and dimension
// mismatches score 0 instead of dividing by zero or panicking.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
