package model

import (
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/sampler"
)

// the corpus likelihood is logged every likelihoodLag iterations
const likelihoodLag = 10

// Run drives m through a whole sampling run: it records the inputs,
// seeds the counts, sweeps NumIters times and writes a checkpoint every
// SaveStep iterations and once more at the end. The first error stops
// the run; files already written stay on disk.
func Run(m Model, s *sampler.Sampler, w *checkpoint.Writer) error {
	p := m.Params()
	data := m.Corpus()

	if err := w.WriteParams(p.Name, p); err != nil {
		return err
	}
	if err := w.WriteVocabulary(p.Name, data.Vocab); err != nil {
		return err
	}
	if err := w.WriteIDCorpus(p.Name, data); err != nil {
		return err
	}

	if err := m.Initialize(s); err != nil {
		return errors.Wrap(err, "initialize")
	}
	log.Infof("running %s sampler: %d topics, %d iterations", p.Model, p.NumTopics, p.NumIters)

	start := time.Now()
	for iter := 1; iter <= p.NumIters; iter++ {
		if err := m.Sweep(s); err != nil {
			return errors.Wrapf(err, "iteration %d", iter)
		}
		if iter%likelihoodLag == 0 && log.V(1) {
			log.Infof("iter %5d, likelihood %f, elapsed %v", iter, m.LogLikelihood(), time.Since(start))
		}
		if p.SaveStep > 0 && iter%p.SaveStep == 0 && iter < p.NumIters {
			name := fmt.Sprintf("%s-%d", p.Name, iter)
			if err := m.Checkpoint(w, name); err != nil {
				return err
			}
			log.Infof("saved checkpoint %s", name)
		}
	}

	if err := m.Checkpoint(w, p.Name); err != nil {
		return err
	}
	log.Infof("sampling done in %v, outputs written as %s", time.Since(start), w.Path(p.Name, ""))
	return nil
}
