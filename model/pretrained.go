package model

import (
	"strings"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/matrix"
	"github.com/bobonovski/ldadmm/sstable"
)

// Pretrained is a fitted model read back from its output files
type Pretrained struct {
	Params config.Params
	Vocab  *corpus.Vocabulary
	// topic x vocabulary counts, nil when only phi was found
	WordTopic *matrix.Uint32Matrix
	// topic x vocabulary probabilities, set only when WordTopic is nil
	Phi *matrix.Float64Matrix
}

// LoadPretrained reads the model whose parameters file is parasPath. Its
// siblings with the same prefix supply the vocabulary and the counts
// (".WTcount"), or the probabilities (".phi") when no counts were kept.
func LoadPretrained(fs afero.Fs, parasPath string) (*Pretrained, error) {
	prefix := strings.TrimSuffix(parasPath, checkpoint.Params)
	pre := &Pretrained{}

	err := readFile(fs, parasPath, func(f afero.File) (err error) {
		pre.Params, err = config.ReadParams(f)
		return err
	})
	if err != nil {
		return nil, err
	}
	if pre.Params.NumTopics <= 0 {
		return nil, &corpus.CorpusError{Path: parasPath,
			Err: errors.Errorf("number of topics must be positive, got %d", pre.Params.NumTopics)}
	}

	vocabPath := prefix + checkpoint.Vocabulary
	err = readFile(fs, vocabPath, func(f afero.File) (err error) {
		pre.Vocab, err = corpus.ReadVocabulary(f)
		return err
	})
	if err != nil {
		return nil, err
	}

	countPath := prefix + checkpoint.WordTopicCount
	ok, err := afero.Exists(fs, countPath)
	if err != nil {
		return nil, &corpus.CorpusError{Path: countPath, Err: err}
	}
	var rows, cols int
	var path string
	if ok {
		path = countPath
		err = readFile(fs, path, func(f afero.File) (err error) {
			pre.WordTopic, err = sstable.ReadUint32Matrix(f)
			return err
		})
		if err == nil {
			rows, cols = pre.WordTopic.Shape()
		}
	} else {
		path = prefix + checkpoint.Phi
		err = readFile(fs, path, func(f afero.File) (err error) {
			pre.Phi, err = sstable.ReadFloat64Matrix(f)
			return err
		})
		if err == nil {
			rows, cols = pre.Phi.Shape()
		}
	}
	if err != nil {
		return nil, err
	}
	if rows != pre.Params.NumTopics || cols != pre.Vocab.Len() {
		return nil, &corpus.CorpusError{Path: path, Err: errors.Errorf(
			"matrix is %dx%d, want %d topics by %d words", rows, cols, pre.Params.NumTopics, pre.Vocab.Len())}
	}

	log.Infof("loaded %s model from %s: %d topics, %d words",
		pre.Params.Model, path, pre.Params.NumTopics, pre.Vocab.Len())
	return pre, nil
}

// readFile opens path and hands it to fn. Failures of either step come
// back as a *corpus.CorpusError naming path.
func readFile(fs afero.Fs, path string, fn func(afero.File) error) error {
	f, err := fs.Open(path)
	if err != nil {
		return &corpus.CorpusError{Path: path, Err: err}
	}
	defer f.Close()

	if err := fn(f); err != nil {
		var cerr *corpus.CorpusError
		if errors.As(err, &cerr) {
			cerr.Path = path
			return cerr
		}
		return &corpus.CorpusError{Path: path, Err: err}
	}
	return nil
}
