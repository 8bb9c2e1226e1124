package model

import (
	"math"

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
	Register(config.DMM, NewDMM)
}

// DMM is the Dirichlet multinomial mixture: every document is drawn
// from exactly one topic, which suits short texts.
type DMM struct {
	params config.Params
	data   *corpus.Corpus
	counts *table.Counts

	// phi replaces the count ratio when a pretrained model ships
	// probabilities only
	phi *matrix.Float64Matrix

	topics  []int // topic of every document
	weights []float64
	warm    [][]int
}

// NewDMM creates a DMM instance with collapsed gibbs sampler
func NewDMM(in Input) (Model, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	counts := table.NewDocumentCounts(in.Params.NumTopics, in.Corpus.Vocab.Len())
	return newDMM(in, counts), nil
}

func newDMM(in Input, counts *table.Counts) *DMM {
	return &DMM{
		params:  in.Params,
		data:    in.Corpus,
		counts:  counts,
		topics:  make([]int, in.Corpus.NumDocuments()),
		weights: make([]float64, in.Params.NumTopics),
		warm:    in.WarmStart,
	}
}

func checkInput(in Input) error {
	if in.Corpus == nil {
		return errors.New("no corpus")
	}
	if in.Params.NumTopics <= 0 {
		return errors.Errorf("number of topics must be positive, got %d", in.Params.NumTopics)
	}
	return nil
}

func (m *DMM) Params() config.Params  { return m.params }
func (m *DMM) Corpus() *corpus.Corpus { return m.data }
func (m *DMM) Counts() *table.Counts  { return m.counts }

// Topics returns the current topic of every document
func (m *DMM) Topics() []int { return m.topics }

func (m *DMM) Initialize(s *sampler.Sampler) error {
	var rows [][]int
	if m.warm != nil {
		var err error
		if rows, err = alignWarmStart(m.data, m.warm, m.params.NumTopics); err != nil {
			return err
		}
	}
	for d, doc := range m.data.Docs {
		var topic int
		if rows != nil && len(rows[d]) > 0 {
			// the first id stands for the whole document
			topic = rows[d][0]
		} else {
			var err error
			if topic, err = s.Uniform(m.params.NumTopics); err != nil {
				return errors.Wrapf(err, "document %d", d)
			}
		}
		m.topics[d] = topic
		m.counts.AddDocument(doc.Words, topic)
	}
	return nil
}

func (m *DMM) Sweep(s *sampler.Sampler) error {
	for d, doc := range m.data.Docs {
		old := m.topics[d]
		m.counts.RemoveDocument(doc.Words, old)

		m.conditional(doc, m.weights)
		topic, err := s.Sample(m.weights)
		if err != nil {
			m.counts.AddDocument(doc.Words, old)
			return errors.Wrapf(err, "document %d", d)
		}

		m.counts.AddDocument(doc.Words, topic)
		m.topics[d] = topic
	}
	return nil
}

// conditional fills weights with the unnormalized probability of every
// topic for doc, given counts that exclude doc itself. The weights are
// scaled by a common factor so the largest is one.
func (m *DMM) conditional(doc corpus.Document, weights []float64) {
	m.logConditional(doc, weights)
	util.ExpShift(weights)
}

// logConditional fills logw with the log weight of every topic.
// Repeated words are sequential draws from the same urn, so the k-th
// occurrence of a word sees k-1 extra counts and every position grows
// the denominator by one. A product over a long document underflows
// float64, hence the sum of logs.
func (m *DMM) logConditional(doc corpus.Document, logw []float64) {
	alpha, beta := m.params.Alpha, m.params.Beta
	betaSum := float64(m.data.Vocab.Len()) * beta
	for t := range logw {
		lw := math.Log(float64(m.counts.DocTopic.Get(0, t)) + alpha)
		if m.phi != nil {
			for _, word := range doc.Words {
				lw += math.Log(m.phi.Get(t, word))
			}
			logw[t] = lw
			continue
		}
		row := m.counts.TopicWord.Row(t)
		sum := float64(m.counts.TopicWordSum[t]) + betaSum
		for i, word := range doc.Words {
			lw += math.Log((float64(row[word]) + beta + float64(doc.Ranks[i]-1)) / (sum + float64(i)))
		}
		logw[t] = lw
	}
}

func (m *DMM) topicWordProbs() *matrix.Float64Matrix {
	if m.phi != nil {
		return m.phi
	}
	return estimatePhi(m.counts, m.params.Beta)
}

// theta scores every topic of a document by its share of documents and
// the probability of the document's words under the topic. The product
// is taken in log space; long documents would underflow otherwise.
func (m *DMM) theta(phi *matrix.Float64Matrix) *matrix.Float64Matrix {
	numTopics := m.counts.NumTopics()
	theta := matrix.NewFloat64Matrix(m.data.NumDocuments(), numTopics)
	for d, doc := range m.data.Docs {
		row := theta.Row(d)
		for t := range row {
			lw := math.Log(float64(m.counts.DocTopic.Get(0, t)) + m.params.Alpha)
			for _, w := range doc.Words {
				lw += math.Log(phi.Get(t, w))
			}
			row[t] = lw
		}
		util.NormalizeLog(row)
	}
	return theta
}

func (m *DMM) assignments() [][]int {
	rows := make([][]int, len(m.topics))
	for d, topic := range m.topics {
		rows[d] = repeat(topic, m.data.Docs[d].Len())
	}
	return rows
}

func (m *DMM) Snapshot() *checkpoint.Snapshot {
	phi := m.topicWordProbs()
	return &checkpoint.Snapshot{
		Vocab:       m.data.Vocab,
		Phi:         phi,
		Theta:       m.theta(phi),
		Assignments: m.assignments(),
		WordTopic:   m.counts.TopicWord,
		TopWords:    m.params.TopWords,
	}
}

func (m *DMM) Checkpoint(w *checkpoint.Writer, name string) error {
	return w.WriteSnapshot(name, m.Snapshot())
}

func (m *DMM) LogLikelihood() float64 {
	phi := m.topicWordProbs()
	return likelihood(m.data, phi, m.theta(phi))
}
