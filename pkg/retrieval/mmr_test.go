package retrieval

import (
	"testing"

	"github.com/google/uuid"
)

func cand(id string, similarity float64, vec []float32) Candidate {
	return Candidate{
		ChunkId:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)),
		Content:    id,
		Vector:     vec,
		Similarity: similarity,
	}
}

func TestSelectMMRFirstPickIsArgmax(t *testing.T) {
	candidates := []Candidate{
		cand("low", 0.3, []float32{0, 1}),
		cand("high", 0.9, []float32{1, 0}),
		cand("mid", 0.6, []float32{0.7, 0.7}),
	}

	selected := SelectMMR(candidates, 0.9, 3)

	if len(selected) != 3 {
		t.Fatalf("selected %d, want 3", len(selected))
	}
	if selected[0].Content != "high" {
		t.Errorf("first pick = %q, want argmax of similarity", selected[0].Content)
	}
}

func TestSelectMMRPenalizesRedundancy(t *testing.T) {
	// "dup" is nearly identical to "best"; "diverse" is orthogonal. With a
	// diversity term in play, "diverse" should outrank "dup" despite the
	// lower query similarity.
	candidates := []Candidate{
		cand("best", 0.90, []float32{1, 0}),
		cand("dup", 0.89, []float32{0.999, 0.01}),
		cand("diverse", 0.70, []float32{0, 1}),
	}

	selected := SelectMMR(candidates, 0.5, 2)

	if len(selected) != 2 {
		t.Fatalf("selected %d, want 2", len(selected))
	}
	if selected[0].Content != "best" || selected[1].Content != "diverse" {
		t.Errorf("selection order = [%s, %s], want [best, diverse]",
			selected[0].Content, selected[1].Content)
	}
}

func TestSelectMMRRelevanceBiasedLambda(t *testing.T) {
	// At lambda 0.9 the redundancy penalty is small, so near-duplicates with
	// clearly higher similarity still win.
	candidates := []Candidate{
		cand("best", 0.90, []float32{1, 0}),
		cand("dup", 0.85, []float32{0.999, 0.01}),
		cand("diverse", 0.45, []float32{0, 1}),
	}

	selected := SelectMMR(candidates, 0.9, 2)

	if selected[0].Content != "best" || selected[1].Content != "dup" {
		t.Errorf("selection order = [%s, %s], want [best, dup]",
			selected[0].Content, selected[1].Content)
	}
}

func TestSelectMMRBounds(t *testing.T) {
	candidates := []Candidate{cand("only", 0.8, []float32{1, 0})}

	if got := SelectMMR(candidates, 0.9, 0); got != nil {
		t.Errorf("n=0 should select nothing, got %d", len(got))
	}
	if got := SelectMMR(nil, 0.9, 5); got != nil {
		t.Errorf("empty pool should select nothing, got %d", len(got))
	}
	if got := SelectMMR(candidates, 0.9, 5); len(got) != 1 {
		t.Errorf("n beyond pool size should return the whole pool, got %d", len(got))
	}
}
