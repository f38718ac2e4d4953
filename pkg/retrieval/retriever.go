package retrieval

import (
	"context"
	"fmt"
	"log"

	"ai-filepilot-be/pkg/embedding"

	"github.com/google/uuid"
)

// Candidate is one row fetched from the chunk store. Embedding holds the raw
// value as it arrived; Vector is filled during sanitization.
type Candidate struct {
	ChunkId    uuid.UUID
	DocumentId uuid.UUID
	Content    string
	Embedding  interface{}
	Vector     []float32
	Similarity float64
	Metadata   map[string]interface{}
}

// Result is a selected chunk in ranked order.
type Result struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

// CandidateSource fetches the top candidate chunks for a query vector,
// scoped to one user, ordered by cosine distance ascending.
type CandidateSource interface {
	TopCandidates(ctx context.Context, queryVec []float32, limit int, userId uint) ([]Candidate, error)
}

// Config holds the retrieval knobs.
type Config struct {
	TopK            int
	MaxResults      int
	SimilarityFloor float64
	MMRLambda       float64
}

func DefaultConfig() Config {
	return Config{
		TopK:            20,
		MaxResults:      5,
		SimilarityFloor: 0.4,
		MMRLambda:       0.9,
	}
}

// Retriever embeds a search term and produces the top relevant, mutually
// distinct chunks for a user.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	source   CandidateSource
	cfg      Config
	logger   *log.Logger
}

func NewRetriever(embedder embedding.EmbeddingProvider, source CandidateSource, cfg Config, logger *log.Logger) *Retriever {
	if cfg.TopK <= 0 {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Retriever{
		embedder: embedder,
		source:   source,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs the full pipeline: embed, fetch, sanitize, floor, MMR.
// An empty result is not an error; it means nothing cleared the floor.
func (r *Retriever) Search(ctx context.Context, term string, userId uint) ([]Result, error) {
	embedResp, err := r.embedder.Generate(term, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("embed search term: %w", err)
	}
	queryVec := embedResp.Embedding.Values
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("embedding provider returned an empty vector")
	}

	candidates, err := r.source.TopCandidates(ctx, queryVec, r.cfg.TopK, userId)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	sanitized := r.sanitize(candidates, len(queryVec))

	// Similarity floor
	survivors := sanitized[:0]
	for _, c := range sanitized {
		if c.Similarity >= r.cfg.SimilarityFloor {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		return []Result{}, nil
	}

	selected := SelectMMR(survivors, r.cfg.MMRLambda, r.cfg.MaxResults)

	results := make([]Result, len(selected))
	for i, c := range selected {
		meta := c.Metadata
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["chunk_id"] = c.ChunkId.String()
		meta["document_id"] = c.DocumentId.String()
		meta["similarity"] = c.Similarity
		results[i] = Result{
			Content:  c.Content,
			Metadata: meta,
		}
	}
	return results, nil
}

// sanitize coerces embeddings to numeric vectors and silently drops rows
// whose vectors are empty or dimension-mismatched.
func (r *Retriever) sanitize(candidates []Candidate, queryDim int) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		vec := c.Vector
		if len(vec) == 0 {
			coerced, ok := CoerceVector(c.Embedding)
			if !ok {
				r.logger.Printf("[RETRIEVAL] skipping chunk %s: unusable embedding", c.ChunkId)
				continue
			}
			vec = coerced
		}
		if len(vec) != queryDim {
			r.logger.Printf("[RETRIEVAL] skipping chunk %s: dimension %d != %d", c.ChunkId, len(vec), queryDim)
			continue
		}
		c.Vector = vec
		out = append(out, c)
	}
	return out
}
