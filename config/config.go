// Package config holds the run parameters of a sampling run: how they
// are defaulted, loaded from YAML, validated, and recorded next to the
// outputs as the ".paras" file.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// model kinds
const (
	LDA    = "LDA"
	DMM    = "DMM"
	LDAInf = "LDAinf"
	DMMInf = "DMMinf"
)

type Params struct {
	Model     string  `yaml:"model" arg:"--model" help:"LDA, DMM, LDAinf or DMMinf"`
	Corpus    string  `yaml:"corpus" arg:"--corpus" help:"one document per line"`
	NumTopics int     `yaml:"ntopics" arg:"--ntopics" help:"number of topics"`
	Alpha     float64 `yaml:"alpha" arg:"--alpha" help:"document-topic prior"`
	Beta      float64 `yaml:"beta" arg:"--beta" help:"topic-word prior"`
	NumIters  int     `yaml:"niters" arg:"--niters" help:"number of sampling iterations"`
	TopWords  int     `yaml:"twords" arg:"--twords" help:"words listed per topic"`
	Name      string  `yaml:"name" arg:"--name" help:"prefix of the output files"`
	InitFile  string  `yaml:"initFile" arg:"--initfile" help:"topic assignments to start from"`
	SaveStep  int     `yaml:"sstep" arg:"--sstep" help:"save a checkpoint every n iterations"`
	Seed      int64   `yaml:"seed" arg:"--seed" help:"seed of the random generator"`
	// Paras points at the ".paras" file of a pretrained model, used by
	// the inference kinds only
	Paras  string `yaml:"paras" arg:"--paras" help:"parameters file of the pretrained model"`
	OutDir string `yaml:"outdir" arg:"--outdir" help:"output directory, defaults to the corpus directory"`
}

// Default returns the jLDADMM defaults
func Default() Params {
	return Params{
		Model:     DMM,
		NumTopics: 20,
		Alpha:     0.1,
		Beta:      0.01,
		NumIters:  2000,
		TopWords:  20,
		Name:      "model",
		Seed:      1,
	}
}

// IsInference reports whether the kind applies a pretrained model
func IsInference(kind string) bool {
	return kind == LDAInf || kind == DMMInf
}

// LoadFile overlays the YAML document at path onto p; keys missing from
// the file keep their current value.
func LoadFile(fs afero.Fs, path string, p *Params) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, p); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

func (p Params) Validate() error {
	switch p.Model {
	case LDA, DMM:
		if p.Corpus == "" {
			return errors.New("a corpus is required")
		}
		if p.NumTopics <= 0 {
			return errors.Errorf("number of topics must be positive, got %d", p.NumTopics)
		}
		if !(p.Alpha > 0) || !(p.Beta > 0) {
			return errors.Errorf("alpha and beta must be positive, got %v and %v", p.Alpha, p.Beta)
		}
	case LDAInf, DMMInf:
		if p.Corpus == "" || p.Paras == "" {
			return errors.New("inference needs a corpus and the parameters file of a trained model")
		}
		if p.InitFile != "" {
			return errors.New("inference does not take an initial topic assignment file")
		}
	default:
		return errors.Errorf("unknown model %q, want one of %s, %s, %s, %s",
			p.Model, LDA, DMM, LDAInf, DMMInf)
	}
	if p.NumIters < 0 || p.TopWords < 0 || p.SaveStep < 0 {
		return errors.New("niters, twords and sstep must not be negative")
	}
	if p.Name == "" {
		return errors.New("an experiment name is required")
	}
	return nil
}

// WriteTo writes the ".paras" record: one "-key<TAB>value" line per
// parameter, optional ones only when set.
func (p Params) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	line := func(key, val string) {
		fmt.Fprintf(&sb, "-%s\t%s\n", key, val)
	}
	line("model", p.Model)
	if p.Corpus != "" {
		line("corpus", p.Corpus)
	}
	if p.Paras != "" {
		line("paras", p.Paras)
	}
	line("ntopics", strconv.Itoa(p.NumTopics))
	line("alpha", strconv.FormatFloat(p.Alpha, 'g', -1, 64))
	line("beta", strconv.FormatFloat(p.Beta, 'g', -1, 64))
	line("niters", strconv.Itoa(p.NumIters))
	line("twords", strconv.Itoa(p.TopWords))
	line("name", p.Name)
	if p.InitFile != "" {
		line("initFile", p.InitFile)
	}
	if p.SaveStep > 0 {
		line("sstep", strconv.Itoa(p.SaveStep))
	}
	line("seed", strconv.FormatInt(p.Seed, 10))

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// ReadParams parses a ".paras" record. Unknown keys are ignored so
// that files written by other tools still load.
func ReadParams(r io.Reader) (Params, error) {
	var p Params
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		// values are taken verbatim after the first tab, paths may hold spaces
		key, val, ok := strings.Cut(text, "\t")
		if !ok {
			key, val, ok = strings.Cut(strings.TrimSpace(text), " ")
			val = strings.TrimSpace(val)
		}
		key = strings.TrimSpace(key)
		if !ok || val == "" || !strings.HasPrefix(key, "-") {
			return p, errors.Errorf("line %d: want \"-key\tvalue\", got %q", lineNo, text)
		}
		key = strings.TrimPrefix(key, "-")

		var err error
		switch key {
		case "model":
			p.Model = val
		case "corpus":
			p.Corpus = val
		case "paras":
			p.Paras = val
		case "ntopics":
			p.NumTopics, err = strconv.Atoi(val)
		case "alpha":
			p.Alpha, err = strconv.ParseFloat(val, 64)
		case "beta":
			p.Beta, err = strconv.ParseFloat(val, 64)
		case "niters":
			p.NumIters, err = strconv.Atoi(val)
		case "twords":
			p.TopWords, err = strconv.Atoi(val)
		case "name":
			p.Name = val
		case "initFile":
			p.InitFile = val
		case "sstep":
			p.SaveStep, err = strconv.Atoi(val)
		case "seed":
			p.Seed, err = strconv.ParseInt(val, 10, 64)
		}
		if err != nil {
			return p, errors.Wrapf(err, "line %d: bad value for -%s", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return p, errors.Wrap(err, "read parameters")
	}
	return p, nil
}
