package checkpoint

import (
	"fmt"
	"io"
	"path/filepath"

	log "github.com/golang/glog"
	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/sstable"
)

// output suffixes
const (
	Params           = ".paras"
	Vocabulary       = ".vocabulary"
	TopicAssignments = ".topicAssignments"
	TopWords         = ".topWords"
	Phi              = ".phi"
	Theta            = ".theta"
	WordTopicCount   = ".WTcount"
	IDCorpus         = ".IDcorpus"
)

// IOError reports a failed checkpoint write. Files written before the
// failure are left as they are.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("checkpoint error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Cause() error { return e.Err }

// Writer places every artifact of a run under one directory, named
// <dir>/<name><suffix>. Each write opens, fills and closes its own
// file, so no handle outlives a call.
type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

func (w *Writer) Path(name, suffix string) string {
	return filepath.Join(w.dir, name+suffix)
}

// WriteFile creates <name><suffix>, hands it to fn and closes it on
// every path. Any failure comes back as an *IOError.
func (w *Writer) WriteFile(name, suffix string, fn func(io.Writer) error) (err error) {
	path := w.Path(name, suffix)
	if w.dir != "" {
		if err := w.fs.MkdirAll(w.dir, 0755); err != nil {
			return &IOError{Path: path, Err: err}
		}
	}
	f, err := w.fs.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Path: path, Err: cerr}
		}
	}()

	if err := fn(f); err != nil {
		return &IOError{Path: path, Err: err}
	}
	log.V(2).Infof("wrote %s", path)
	return nil
}

func (w *Writer) WriteParams(name string, p config.Params) error {
	return w.WriteFile(name, Params, func(out io.Writer) error {
		_, err := p.WriteTo(out)
		return err
	})
}

func (w *Writer) WriteVocabulary(name string, v *corpus.Vocabulary) error {
	return w.WriteFile(name, Vocabulary, func(out io.Writer) error {
		_, err := v.WriteTo(out)
		return err
	})
}

func (w *Writer) WriteIDCorpus(name string, c *corpus.Corpus) error {
	return w.WriteFile(name, IDCorpus, func(out io.Writer) error {
		return sstable.WriteIntRows(out, c.IDs())
	})
}

// WriteSnapshot writes the per-checkpoint artifacts: top words, theta,
// topic assignments, phi and, when counts exist, the word-topic counts.
func (w *Writer) WriteSnapshot(name string, s *Snapshot) error {
	if err := w.WriteFile(name, TopWords, func(out io.Writer) error {
		return writeTopWords(out, s)
	}); err != nil {
		return err
	}
	if err := w.WriteFile(name, Theta, func(out io.Writer) error {
		return sstable.WriteMatrix(out, s.Theta)
	}); err != nil {
		return err
	}
	if err := w.WriteFile(name, TopicAssignments, func(out io.Writer) error {
		return sstable.WriteIntRows(out, s.Assignments)
	}); err != nil {
		return err
	}
	if err := w.WriteFile(name, Phi, func(out io.Writer) error {
		return sstable.WriteMatrix(out, s.Phi)
	}); err != nil {
		return err
	}
	if s.WordTopic == nil {
		return nil
	}
	return w.WriteFile(name, WordTopicCount, func(out io.Writer) error {
		return sstable.WriteMatrix(out, s.WordTopic)
	})
}
