package table

import (
	"github.com/pkg/errors"

	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/matrix"
	"github.com/bobonovski/ldadmm/util"
)

// Counts holds the sufficient statistics of a collapsed Gibbs sampler.
// Every resampling step removes one unit (a document for DMM, a token
// for LDA) and adds it back under its new topic; nothing may read the
// counts in between.
type Counts struct {
	// [t, w]-th element counts how many times word w
	// is currently assigned to topic t
	TopicWord *matrix.Uint32Matrix
	// [t]-th element counts how many words in total
	// are assigned to topic t
	TopicWordSum []uint32
	// for LDA the [d, t]-th element counts how many words in d are
	// assigned to topic t; for DMM the single row counts documents
	// per topic
	DocTopic *matrix.Uint32Matrix

	// frozen counts keep TopicWord and TopicWordSum fixed, used when
	// applying a pretrained model to new documents
	frozen bool
	// byDocument is set when the unit of sampling is a whole document
	byDocument bool
}

// NewDocumentCounts creates the tables of a one-topic-per-document model
func NewDocumentCounts(numTopics, vocabSize int) *Counts {
	return &Counts{
		TopicWord:    matrix.NewUint32Matrix(numTopics, vocabSize),
		TopicWordSum: make([]uint32, numTopics),
		DocTopic:     matrix.NewUint32Matrix(1, numTopics),
		byDocument:   true,
	}
}

// NewTokenCounts creates the tables of a topic-per-token model
func NewTokenCounts(numTopics, vocabSize, numDocs int) *Counts {
	return &Counts{
		TopicWord:    matrix.NewUint32Matrix(numTopics, vocabSize),
		TopicWordSum: make([]uint32, numTopics),
		DocTopic:     matrix.NewUint32Matrix(numDocs, numTopics),
	}
}

// Freeze wraps pretrained topic-word counts. The returned tables only
// let the document-level counts change. numDocs is ignored for the
// one-topic-per-document layout.
func Freeze(topicWord *matrix.Uint32Matrix, byDocument bool, numDocs int) *Counts {
	docRows := numDocs
	if byDocument {
		docRows = 1
	}
	numTopics, _ := topicWord.Shape()
	sums := make([]uint32, numTopics)
	for t := range sums {
		sums[t] = util.VectorSum(topicWord.Row(t))
	}
	return &Counts{
		TopicWord:    topicWord,
		TopicWordSum: sums,
		DocTopic:     matrix.NewUint32Matrix(docRows, numTopics),
		frozen:       true,
		byDocument:   byDocument,
	}
}

func (c *Counts) Frozen() bool {
	return c.frozen
}

func (c *Counts) NumTopics() int {
	return len(c.TopicWordSum)
}

// AddDocument assigns every word of doc to topic and counts one more
// document for it.
func (c *Counts) AddDocument(words []int, topic int) {
	c.DocTopic.Incr(0, topic, 1)
	if c.frozen {
		return
	}
	for _, w := range words {
		c.TopicWord.Incr(topic, w, 1)
	}
	c.TopicWordSum[topic] += uint32(len(words))
}

// RemoveDocument undoes AddDocument
func (c *Counts) RemoveDocument(words []int, topic int) {
	c.DocTopic.Decr(0, topic, 1)
	if c.frozen {
		return
	}
	for _, w := range words {
		c.TopicWord.Decr(topic, w, 1)
	}
	if c.TopicWordSum[topic] < uint32(len(words)) {
		panic(matrix.ErrNegativeCount)
	}
	c.TopicWordSum[topic] -= uint32(len(words))
}

// AddToken assigns one occurrence of word w in document d to topic
func (c *Counts) AddToken(d, w, topic int) {
	c.DocTopic.Incr(d, topic, 1)
	if c.frozen {
		return
	}
	c.TopicWord.Incr(topic, w, 1)
	c.TopicWordSum[topic]++
}

// RemoveToken undoes AddToken
func (c *Counts) RemoveToken(d, w, topic int) {
	c.DocTopic.Decr(d, topic, 1)
	if c.frozen {
		return
	}
	c.TopicWord.Decr(topic, w, 1)
	if c.TopicWordSum[topic] == 0 {
		panic(matrix.ErrNegativeCount)
	}
	c.TopicWordSum[topic]--
}

// Check verifies that TopicWordSum matches the row sums of TopicWord
func (c *Counts) Check() error {
	for t, sum := range c.TopicWordSum {
		if got := util.VectorSum(c.TopicWord.Row(t)); got != sum {
			return errors.Errorf("topic %d: word counts sum to %d, recorded %d", t, got, sum)
		}
	}
	return nil
}

// CheckCorpus verifies Check plus the totals implied by the corpus:
// every word is counted exactly as often as it occurs, and the
// document-level table accounts for every document (one row) or every
// token of each document (one row per document).
func (c *Counts) CheckCorpus(data *corpus.Corpus) error {
	if err := c.Check(); err != nil {
		return err
	}

	if !c.frozen {
		for w, freq := range data.WordFrequencies() {
			if total := int(util.VectorSum(c.TopicWord.Col(w))); total != freq {
				return errors.Errorf("word %d: counted %d times, occurs %d times", w, total, freq)
			}
		}
	}

	if c.byDocument {
		if got := int(util.VectorSum(c.DocTopic.Row(0))); got != data.NumDocuments() {
			return errors.Errorf("document topic counts sum to %d, corpus has %d documents",
				got, data.NumDocuments())
		}
		return nil
	}
	if rows, _ := c.DocTopic.Shape(); rows != data.NumDocuments() {
		return errors.Errorf("document topic table has %d rows, corpus has %d documents",
			rows, data.NumDocuments())
	}
	for d, doc := range data.Docs {
		if got := int(util.VectorSum(c.DocTopic.Row(d))); got != doc.Len() {
			return errors.Errorf("document %d: topic counts sum to %d, document has %d words",
				d, got, doc.Len())
		}
	}
	return nil
}

// Clone returns a deep copy, used to snapshot the statistics
func (c *Counts) Clone() *Counts {
	sums := make([]uint32, len(c.TopicWordSum))
	copy(sums, c.TopicWordSum)
	return &Counts{
		TopicWord:    c.TopicWord.Clone(),
		TopicWordSum: sums,
		DocTopic:     c.DocTopic.Clone(),
		frozen:       c.frozen,
		byDocument:   c.byDocument,
	}
}

// Equal reports whether both stores hold identical tables
func (c *Counts) Equal(o *Counts) bool {
	if len(c.TopicWordSum) != len(o.TopicWordSum) {
		return false
	}
	for t := range c.TopicWordSum {
		if c.TopicWordSum[t] != o.TopicWordSum[t] {
			return false
		}
	}
	return c.TopicWord.Equal(o.TopicWord) && c.DocTopic.Equal(o.DocTopic)
}
