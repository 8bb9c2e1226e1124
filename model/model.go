package model

import (
	"fmt"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/sampler"
	"github.com/bobonovski/ldadmm/table"
)

var constructors = make(map[string]ModelCtor)

// the common interface every collapsed Gibbs sampler follows
type Model interface {
	// seed the counts, from the warm start rows if any, else at random
	Initialize(s *sampler.Sampler) error
	// resample every unit of the corpus once, in corpus order
	Sweep(s *sampler.Sampler) error
	// write the save-point artifacts under name
	Checkpoint(w *checkpoint.Writer, name string) error

	// derived outputs of the current state; never mutates it
	Snapshot() *checkpoint.Snapshot
	// joint log-likelihood of the corpus under the point estimates
	LogLikelihood() float64

	Params() config.Params
	Corpus() *corpus.Corpus
	Counts() *table.Counts
}

// Input is everything a constructor may need
type Input struct {
	Corpus *corpus.Corpus
	Params config.Params
	// topic ids per document read from a previous run, nil for a
	// random start
	WarmStart [][]int
	// the fitted model, inference kinds only
	Pretrained *Pretrained
}

type ModelCtor func(in Input) (Model, error)

// new samplers should register themselves using this function
func Register(kind string, m ModelCtor) {
	constructors[kind] = m
}

func GetModel(kind string) (ModelCtor, error) {
	if _, ok := constructors[kind]; !ok {
		return nil, fmt.Errorf("model %s not registered", kind)
	}
	return constructors[kind], nil
}
