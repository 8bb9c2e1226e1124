package corpus

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Vocabulary maintains the bi-directional mapping between words and
// ids. Ids are dense in [0, Len()) and assigned in the order words are
// first seen, which fixes the column order of every output matrix.
type Vocabulary struct {
	words []string
	ids   map[string]int
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[string]int)}
}

// Add returns the id of word, assigning the next free id if the word
// has not been seen before.
func (v *Vocabulary) Add(word string) int {
	if id, ok := v.ids[word]; ok {
		return id
	}
	id := len(v.words)
	v.ids[word] = id
	v.words = append(v.words, word)
	return id
}

func (v *Vocabulary) ID(word string) (int, bool) {
	id, ok := v.ids[word]
	return id, ok
}

func (v *Vocabulary) Word(id int) string {
	return v.words[id]
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}

// WriteTo writes one "word id" pair per line in id order
func (v *Vocabulary) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for id, word := range v.words {
		k, err := bw.WriteString(word + " " + strconv.Itoa(id) + "\n")
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadVocabulary parses the "word id" format produced by WriteTo. Lines
// may come in any order but the ids must cover [0, n) exactly once.
func ReadVocabulary(r io.Reader) (*Vocabulary, error) {
	byID := make(map[int]string)
	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &CorpusError{Line: lineNo,
				Err: errors.Errorf("want \"word id\", got %q", scanner.Text())}
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil || id < 0 {
			return nil, &CorpusError{Line: lineNo,
				Err: errors.Errorf("bad word id %q", fields[1])}
		}
		if _, dup := byID[id]; dup {
			return nil, &CorpusError{Line: lineNo,
				Err: errors.Errorf("duplicate word id %d", id)}
		}
		byID[id] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, &CorpusError{Err: errors.Wrap(err, "read vocabulary")}
	}

	v := NewVocabulary()
	for id := 0; id < len(byID); id++ {
		word, ok := byID[id]
		if !ok {
			return nil, &CorpusError{Err: errors.Errorf("word ids not dense, missing %d", id)}
		}
		if _, dup := v.ids[word]; dup {
			return nil, &CorpusError{Err: errors.Errorf("word %q listed twice", word)}
		}
		v.Add(word)
	}
	return v, nil
}
