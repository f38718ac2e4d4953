package retrieval

// SelectMMR re-ranks candidates with Maximal Marginal Relevance and returns
// up to n of them in selection order.
//
// The first pick is the plain argmax of query similarity. Every later pick
// maximizes lambda*sim(q,d) - (1-lambda)*max over selected s of sim(d,s).
// With lambda close to 1 the ranking stays relevance-biased but still breaks
// ties toward diverse passages, which is what overlapping chunks need.
func SelectMMR(candidates []Candidate, lambda float64, n int) []Candidate {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	pool := make([]Candidate, len(candidates))
	copy(pool, candidates)

	selected := make([]Candidate, 0, n)

	for len(selected) < n && len(pool) > 0 {
		bestIdx := 0
		bestScore := mmrScore(pool[0], selected, lambda)
		for i := 1; i < len(pool); i++ {
			if score := mmrScore(pool[i], selected, lambda); score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		selected = append(selected, pool[bestIdx])
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	return selected
}

func mmrScore(c Candidate, selected []Candidate, lambda float64) float64 {
	if len(selected) == 0 {
		return c.Similarity
	}

	maxRedundancy := 0.0
	for _, s := range selected {
		if sim := CosineSimilarity(c.Vector, s.Vector); sim > maxRedundancy {
			maxRedundancy = sim
		}
	}
	return lambda*c.Similarity - (1-lambda)*maxRedundancy
}
