package model

import (
	"math"

	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/matrix"
	"github.com/bobonovski/ldadmm/table"
)

// compute the posterior point estimation of topic-word mixture
// beta (Dirichlet prior) + data -> phi
func estimatePhi(counts *table.Counts, beta float64) *matrix.Float64Matrix {
	numTopics, vocabSize := counts.TopicWord.Shape()
	betaSum := float64(vocabSize) * beta
	phi := matrix.NewFloat64Matrix(numTopics, vocabSize)
	for t := 0; t < numTopics; t++ {
		denom := float64(counts.TopicWordSum[t]) + betaSum
		row := phi.Row(t)
		for w, n := range counts.TopicWord.Row(t) {
			row[w] = (float64(n) + beta) / denom
		}
	}
	return phi
}

// compute the joint likelihood of the corpus,
// sum_d sum_i log sum_t phi[t][w_i] * theta[d][t]
func likelihood(data *corpus.Corpus, phi, theta *matrix.Float64Matrix) float64 {
	numTopics, _ := phi.Shape()
	sum := 0.0
	for d, doc := range data.Docs {
		mix := theta.Row(d)
		for _, w := range doc.Words {
			p := 0.0
			for t := 0; t < numTopics; t++ {
				p += phi.Get(t, w) * mix[t]
			}
			sum += math.Log(p)
		}
	}
	return sum
}

// repeat copies topic n times, the per-token form of a document topic
func repeat(topic, n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = topic
	}
	return row
}
