package model

import (
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/matrix"
	"github.com/bobonovski/ldadmm/table"
)

func init() {
	Register(config.DMMInf, NewDMMInf)
	Register(config.LDAInf, NewLDAInf)
}

// DMMInf assigns topics to new documents under a pretrained DMM. The
// topic-word statistics stay as loaded; only document topics move.
type DMMInf struct {
	*DMM
}

// LDAInf is the LDA counterpart of DMMInf
type LDAInf struct {
	*LDA
}

func NewDMMInf(in Input) (Model, error) {
	counts, phi, err := frozenCounts(in, config.DMM, true)
	if err != nil {
		return nil, err
	}
	m := newDMM(in, counts)
	m.phi = phi
	return &DMMInf{DMM: m}, nil
}

func NewLDAInf(in Input) (Model, error) {
	counts, phi, err := frozenCounts(in, config.LDA, false)
	if err != nil {
		return nil, err
	}
	m := newLDA(in, counts)
	m.phi = phi
	return &LDAInf{LDA: m}, nil
}

// frozenCounts builds the fixed tables of an inference run. Without
// pretrained counts the topic-word table stays empty and phi is
// returned to take its place.
func frozenCounts(in Input, trainedAs string, byDocument bool) (*table.Counts, *matrix.Float64Matrix, error) {
	if err := checkInput(in); err != nil {
		return nil, nil, err
	}
	pre := in.Pretrained
	if pre == nil {
		return nil, nil, errors.New("inference needs a pretrained model")
	}
	if pre.Params.Model != "" && pre.Params.Model != trainedAs {
		log.Warningf("applying a model trained as %s with %s inference", pre.Params.Model, trainedAs)
	}
	if in.Corpus.Vocab != pre.Vocab {
		return nil, nil, errors.New("corpus was not read against the pretrained vocabulary")
	}

	numTopics := in.Params.NumTopics
	if pre.WordTopic != nil {
		if rows, _ := pre.WordTopic.Shape(); rows != numTopics {
			return nil, nil, errors.Errorf("pretrained model has %d topics, want %d", rows, numTopics)
		}
		return table.Freeze(pre.WordTopic, byDocument, in.Corpus.NumDocuments()), nil, nil
	}
	if rows, _ := pre.Phi.Shape(); rows != numTopics {
		return nil, nil, errors.Errorf("pretrained model has %d topics, want %d", rows, numTopics)
	}
	empty := matrix.NewUint32Matrix(numTopics, pre.Vocab.Len())
	return table.Freeze(empty, byDocument, in.Corpus.NumDocuments()), pre.Phi, nil
}

// the pretrained counts are an input of the run, not one of its results
func (m *DMMInf) Snapshot() *checkpoint.Snapshot {
	s := m.DMM.Snapshot()
	s.WordTopic = nil
	return s
}

func (m *DMMInf) Checkpoint(w *checkpoint.Writer, name string) error {
	return w.WriteSnapshot(name, m.Snapshot())
}

func (m *LDAInf) Snapshot() *checkpoint.Snapshot {
	s := m.LDA.Snapshot()
	s.WordTopic = nil
	return s
}

func (m *LDAInf) Checkpoint(w *checkpoint.Writer, name string) error {
	return w.WriteSnapshot(name, m.Snapshot())
}
