package checkpoint

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/matrix"
)

// Snapshot is the derived, read-only view of a sampler at a save point
type Snapshot struct {
	Vocab *corpus.Vocabulary
	// topic x vocabulary probabilities
	Phi *matrix.Float64Matrix
	// document x topic probabilities, rows sum to one
	Theta *matrix.Float64Matrix
	// per-unit topic ids, one row per document
	Assignments [][]int
	// topic x vocabulary counts, nil if the model only knows phi
	WordTopic *matrix.Uint32Matrix
	// number of words listed per topic in the top words file
	TopWords int
}

// RankWords returns the word ids of a phi row ordered by probability,
// highest first, ties broken by ascending word id.
func RankWords(probs []float64) []int {
	ids := make([]int, len(probs))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return probs[ids[i]] > probs[ids[j]]
	})
	return ids
}

// Round6 rounds p to six decimal digits
func Round6(p float64) float64 {
	return math.Round(p*1e6) / 1e6
}

func writeTopWords(w io.Writer, s *Snapshot) error {
	bw := bufio.NewWriter(w)
	numTopics, _ := s.Phi.Shape()
	var buf []byte
	for t := 0; t < numTopics; t++ {
		buf = append(buf[:0], "Topic"...)
		buf = strconv.AppendInt(buf, int64(t), 10)
		buf = append(buf, ':')

		probs := s.Phi.Row(t)
		ranked := RankWords(probs)
		if len(ranked) > s.TopWords {
			ranked = ranked[:s.TopWords]
		}
		for _, id := range ranked {
			buf = append(buf, ' ')
			buf = append(buf, s.Vocab.Word(id)...)
			buf = append(buf, '(')
			buf = strconv.AppendFloat(buf, Round6(probs[id]), 'f', -1, 64)
			buf = append(buf, ')')
		}
		buf = append(buf, "\n\n"...)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
