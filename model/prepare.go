package model

import (
	log "github.com/golang/glog"
	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
)

// Prepare reads every input a run of kind p.Model needs from fs. For
// the inference kinds the topic count and priors of the pretrained
// model replace the ones in p.
func Prepare(fs afero.Fs, p config.Params) (Input, error) {
	in := Input{Params: p}

	var vocab *corpus.Vocabulary
	if config.IsInference(p.Model) {
		pre, err := LoadPretrained(fs, p.Paras)
		if err != nil {
			return in, err
		}
		in.Pretrained = pre
		in.Params.NumTopics = pre.Params.NumTopics
		in.Params.Alpha = pre.Params.Alpha
		in.Params.Beta = pre.Params.Beta
		vocab = pre.Vocab
	}

	c, err := corpus.LoadFile(fs, p.Corpus, vocab)
	if err != nil {
		return in, err
	}
	in.Corpus = c

	if p.InitFile != "" {
		log.Infof("reading initial topic assignments from %s", p.InitFile)
		if in.WarmStart, err = ReadWarmStart(fs, p.InitFile); err != nil {
			return in, err
		}
	}
	return in, nil
}

// New prepares the inputs of p and builds the registered model
func New(fs afero.Fs, p config.Params) (Model, error) {
	ctor, err := GetModel(p.Model)
	if err != nil {
		return nil, err
	}
	in, err := Prepare(fs, p)
	if err != nil {
		return nil, err
	}
	return ctor(in)
}
