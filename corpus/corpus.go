package corpus

import (
	"bufio"
	"io"
	"strings"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/util"
)

// lines longer than this are reported as a CorpusError
const maxLineBytes = 64 << 20

type Corpus struct {
	Vocab    *Vocabulary
	Docs     []Document
	NumWords int // number of tokens over all documents
}

// Document is the integer-coded form of one input line
type Document struct {
	Words []int
	// Ranks[i] counts how many times Words[i] has occurred in the
	// document up to and including position i, e.g. "a a b a" gives
	// 1 2 1 3.
	Ranks []int
}

func (d Document) Len() int {
	return len(d.Words)
}

func (c *Corpus) NumDocuments() int {
	return len(c.Docs)
}

// IDs returns the word id sequence of every document
func (c *Corpus) IDs() [][]int {
	ids := make([][]int, len(c.Docs))
	for i, d := range c.Docs {
		ids[i] = d.Words
	}
	return ids
}

// WordFrequencies counts the occurrences of every word id in the corpus
func (c *Corpus) WordFrequencies() []int {
	freq := make([]int, c.Vocab.Len())
	for _, d := range c.Docs {
		for _, w := range d.Words {
			freq[w]++
		}
	}
	return freq
}

// Load reads a corpus with one document per line and whitespace
// separated words. Blank lines are skipped; every new word is given
// the next id of a fresh vocabulary.
func Load(r io.Reader) (*Corpus, error) {
	c := &Corpus{Vocab: NewVocabulary()}
	err := c.scan(r, func(word string) (int, bool) {
		return c.Vocab.Add(word), true
	}, false)
	if err != nil {
		return nil, err
	}
	c.logStats()
	return c, nil
}

// LoadWithVocabulary reads new documents against a fixed vocabulary.
// Words unknown to v are dropped. A line made only of unknown words is
// kept as an empty document so output rows stay aligned with the input.
func LoadWithVocabulary(r io.Reader, v *Vocabulary) (*Corpus, error) {
	c := &Corpus{Vocab: v}
	dropped := 0
	err := c.scan(r, func(word string) (int, bool) {
		id, ok := v.ID(word)
		if !ok {
			dropped++
		}
		return id, ok
	}, true)
	if err != nil {
		return nil, err
	}
	c.logStats()
	if dropped > 0 {
		log.Infof("dropped %s out-of-vocabulary words", util.Count(dropped))
	}
	return c, nil
}

// LoadFile opens path on fs and loads it with Load, or with
// LoadWithVocabulary when v is not nil.
func LoadFile(fs afero.Fs, path string, v *Vocabulary) (*Corpus, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &CorpusError{Path: path, Err: err}
	}
	defer f.Close()

	var c *Corpus
	if v == nil {
		c, err = Load(f)
	} else {
		c, err = LoadWithVocabulary(f, v)
	}
	if cerr, ok := err.(*CorpusError); ok {
		cerr.Path = path
	}
	return c, err
}

func (c *Corpus) scan(r io.Reader, lookup func(string) (int, bool), keepEmpty bool) error {
	scanner := newScanner(r)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		doc := Document{
			Words: make([]int, 0, len(words)),
			Ranks: make([]int, 0, len(words)),
		}
		seen := make(map[int]int)
		for _, word := range words {
			id, ok := lookup(word)
			if !ok {
				continue
			}
			seen[id]++
			doc.Words = append(doc.Words, id)
			doc.Ranks = append(doc.Ranks, seen[id])
		}
		if doc.Len() == 0 && !keepEmpty {
			continue
		}
		c.Docs = append(c.Docs, doc)
		c.NumWords += doc.Len()
	}
	if err := scanner.Err(); err != nil {
		return &CorpusError{Err: errors.Wrap(err, "read corpus")}
	}
	return nil
}

func (c *Corpus) logStats() {
	log.Infof("corpus size: %s docs, %s words",
		util.Count(c.NumDocuments()), util.Count(c.NumWords))
	log.Infof("vocabulary size: %s", util.Count(c.Vocab.Len()))
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}
