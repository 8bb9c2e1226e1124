package model

import (
	"github.com/pkg/errors"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/matrix"
	"github.com/bobonovski/ldadmm/sampler"
	"github.com/bobonovski/ldadmm/table"
	"github.com/bobonovski/ldadmm/util"
)

func init() {
	Register(config.LDA, NewLDA)
}

type LDA struct {
	params config.Params
	data   *corpus.Corpus
	counts *table.Counts
	phi    *matrix.Float64Matrix

	topics  [][]int // doc-word-topic assignments
	weights []float64
	warm    [][]int
}

// NewLDA creates a LDA instance with collapsed gibbs sampler
func NewLDA(in Input) (Model, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	counts := table.NewTokenCounts(in.Params.NumTopics, in.Corpus.Vocab.Len(), in.Corpus.NumDocuments())
	return newLDA(in, counts), nil
}

func newLDA(in Input, counts *table.Counts) *LDA {
	topics := make([][]int, in.Corpus.NumDocuments())
	for d, doc := range in.Corpus.Docs {
		topics[d] = make([]int, doc.Len())
	}
	return &LDA{
		params:  in.Params,
		data:    in.Corpus,
		counts:  counts,
		topics:  topics,
		weights: make([]float64, in.Params.NumTopics),
		warm:    in.WarmStart,
	}
}

func (m *LDA) Params() config.Params  { return m.params }
func (m *LDA) Corpus() *corpus.Corpus { return m.data }
func (m *LDA) Counts() *table.Counts  { return m.counts }

func (m *LDA) Initialize(s *sampler.Sampler) error {
	var rows [][]int
	if m.warm != nil {
		var err error
		if rows, err = alignWarmStart(m.data, m.warm, m.params.NumTopics); err != nil {
			return err
		}
	}
	for d, doc := range m.data.Docs {
		for i, w := range doc.Words {
			var topic int
			if rows != nil {
				topic = rows[d][i]
			} else {
				var err error
				if topic, err = s.Uniform(m.params.NumTopics); err != nil {
					return errors.Wrapf(err, "document %d, word %d", d, i)
				}
			}
			m.topics[d][i] = topic
			m.counts.AddToken(d, w, topic)
		}
	}
	return nil
}

func (m *LDA) Sweep(s *sampler.Sampler) error {
	for d, doc := range m.data.Docs {
		for i, w := range doc.Words {
			old := m.topics[d][i]
			m.counts.RemoveToken(d, w, old)

			m.conditional(d, w, m.weights)
			topic, err := s.Sample(m.weights)
			if err != nil {
				m.counts.AddToken(d, w, old)
				return errors.Wrapf(err, "document %d, word %d", d, i)
			}

			m.counts.AddToken(d, w, topic)
			m.topics[d][i] = topic
		}
	}
	return nil
}

func (m *LDA) conditional(d, w int, weights []float64) {
	alpha, beta := m.params.Alpha, m.params.Beta
	betaSum := float64(m.data.Vocab.Len()) * beta
	for t := range weights {
		var wordPart float64
		if m.phi != nil {
			wordPart = m.phi.Get(t, w)
		} else {
			wordPart = (float64(m.counts.TopicWord.Get(t, w)) + beta) /
				(float64(m.counts.TopicWordSum[t]) + betaSum)
		}
		weights[t] = (float64(m.counts.DocTopic.Get(d, t)) + alpha) * wordPart
	}
}

func (m *LDA) topicWordProbs() *matrix.Float64Matrix {
	if m.phi != nil {
		return m.phi
	}
	return estimatePhi(m.counts, m.params.Beta)
}

// compute the posterior point estimation of document-topic mixture
// alpha (Dirichlet prior) + data -> theta
func (m *LDA) theta() *matrix.Float64Matrix {
	numTopics := m.counts.NumTopics()
	theta := matrix.NewFloat64Matrix(m.data.NumDocuments(), numTopics)
	for d := range m.data.Docs {
		row := theta.Row(d)
		for t := range row {
			row[t] = float64(m.counts.DocTopic.Get(d, t)) + m.params.Alpha
		}
		if !util.Normalize(row) {
			for t := range row {
				row[t] = 1 / float64(numTopics)
			}
		}
	}
	return theta
}

func (m *LDA) Snapshot() *checkpoint.Snapshot {
	return &checkpoint.Snapshot{
		Vocab:       m.data.Vocab,
		Phi:         m.topicWordProbs(),
		Theta:       m.theta(),
		Assignments: m.topics,
		WordTopic:   m.counts.TopicWord,
		TopWords:    m.params.TopWords,
	}
}

func (m *LDA) Checkpoint(w *checkpoint.Writer, name string) error {
	return w.WriteSnapshot(name, m.Snapshot())
}

// compute the joint likelihood of corpus
func (m *LDA) LogLikelihood() float64 {
	return likelihood(m.data, m.topicWordProbs(), m.theta())
}
