package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexflint/go-arg"
	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/model"
	"github.com/bobonovski/ldadmm/sampler"
)

type args struct {
	config.Params
	Config  string `arg:"--config" help:"YAML file of parameters, flags take precedence"`
	Profile string `arg:"--profile" help:"write a cpu or mem profile"`
	Verbose int    `arg:"--verbose" help:"log verbosity, 1 logs the likelihood"`
}

func (args) Description() string {
	return "ldadmm fits LDA and DMM topic models with collapsed Gibbs sampling, " +
		"or infers the topics of new documents under a fitted model."
}

func parseArgs(fs afero.Fs) args {
	a := args{Params: config.Default()}
	arg.MustParse(&a)
	if a.Config == "" {
		return a
	}

	p := config.Default()
	if err := config.LoadFile(fs, a.Config, &p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	a.Params = p
	arg.MustParse(&a)
	return a
}

// errorKind names the error class a failed run ended with
func errorKind(err error) string {
	var (
		cerr *corpus.CorpusError
		kerr *model.ConsistencyError
		serr *sampler.SamplingError
		ierr *checkpoint.IOError
	)
	switch {
	case errors.As(err, &cerr):
		return "CorpusError"
	case errors.As(err, &kerr):
		return "ConsistencyError"
	case errors.As(err, &serr):
		return "SamplingError"
	case errors.As(err, &ierr):
		return "IOError"
	}
	return "Error"
}

func run(fs afero.Fs, p config.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m, err := model.New(fs, p)
	if err != nil {
		return err
	}

	dir := p.OutDir
	if dir == "" {
		dir = filepath.Dir(p.Corpus)
	}
	return model.Run(m, sampler.New(p.Seed), checkpoint.NewWriter(fs, dir))
}

func main() {
	fs := afero.NewOsFs()
	a := parseArgs(fs)

	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(a.Verbose))
	defer log.Flush()

	switch a.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	default:
		log.Warningf("unknown profile %q, want cpu or mem", a.Profile)
	}

	if err := run(fs, a.Params); err != nil {
		log.Errorf("%s: %v", errorKind(err), err)
		log.Flush()
		os.Exit(1)
	}
}
