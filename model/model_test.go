package model

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldadmm/checkpoint"
	"github.com/bobonovski/ldadmm/config"
	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/sampler"
	"github.com/bobonovski/ldadmm/sstable"
)

const threeDocs = "a a b\nb c\na c c\n"

func testParams(kind string) config.Params {
	p := config.Default()
	p.Model = kind
	p.Corpus = "/data/corpus.txt"
	p.NumTopics = 2
	p.Alpha = 0.1
	p.Beta = 0.1
	p.NumIters = 1
	p.TopWords = 2
	p.Name = "model"
	p.Seed = 1
	return p
}

func newModel(t *testing.T, text string, p config.Params) Model {
	data, err := corpus.Load(strings.NewReader(text))
	require.NoError(t, err)
	ctor, err := GetModel(p.Model)
	require.NoError(t, err)
	m, err := ctor(Input{Corpus: data, Params: p})
	require.NoError(t, err)
	return m
}

func readString(t *testing.T, fs afero.Fs, path string) string {
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func requireRowsSumToOne(t *testing.T, s *checkpoint.Snapshot) {
	rows, _ := s.Theta.Shape()
	for d := 0; d < rows; d++ {
		sum := 0.0
		for _, v := range s.Theta.Row(d) {
			require.False(t, math.IsNaN(v), "theta[%d] has NaN", d)
			sum += v
		}
		require.InDelta(t, 1.0, sum, 1e-9, "theta row %d", d)
	}
}

func TestRegistry(t *testing.T) {
	for _, kind := range []string{config.LDA, config.DMM, config.LDAInf, config.DMMInf} {
		_, err := GetModel(kind)
		assert.NoError(t, err, kind)
	}
	_, err := GetModel("PLSA")
	assert.Error(t, err)
}

func TestEndToEnd(t *testing.T) {
	for _, kind := range []string{config.DMM, config.LDA} {
		t.Run(kind, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			m := newModel(t, threeDocs, testParams(kind))
			require.NoError(t, Run(m, sampler.New(1), checkpoint.NewWriter(fs, "/out")))

			assert.Equal(t, "a 0\nb 1\nc 2\n", readString(t, fs, "/out/model.vocabulary"))
			assert.Equal(t, "0 0 1\n1 2\n0 2 2\n", readString(t, fs, "/out/model.IDcorpus"))
			require.NoError(t, m.Counts().CheckCorpus(m.Corpus()))

			theta, err := sstable.ReadFloat64Matrix(strings.NewReader(readString(t, fs, "/out/model.theta")))
			require.NoError(t, err)
			rows, cols := theta.Shape()
			require.Equal(t, 3, rows)
			require.Equal(t, 2, cols)
			requireRowsSumToOne(t, &checkpoint.Snapshot{Theta: theta})

			for _, suffix := range []string{checkpoint.Params, checkpoint.TopWords, checkpoint.Phi,
				checkpoint.TopicAssignments, checkpoint.WordTopicCount} {
				ok, err := afero.Exists(fs, "/out/model"+suffix)
				require.NoError(t, err)
				assert.True(t, ok, suffix)
			}
		})
	}
}

func TestDMMInitialDraw(t *testing.T) {
	m := newModel(t, threeDocs, testParams(config.DMM)).(*DMM)
	require.NoError(t, m.Initialize(sampler.New(42)))

	want := sampler.New(42)
	for d := range m.Corpus().Docs {
		topic, err := want.Uniform(2)
		require.NoError(t, err)
		assert.Equal(t, topic, m.Topics()[d], "document %d", d)
	}
	require.NoError(t, m.Counts().CheckCorpus(m.Corpus()))
	assert.Equal(t, uint32(3), m.Counts().DocTopic.Row(0)[0]+m.Counts().DocTopic.Row(0)[1])
}

func TestSweepKeepsInvariants(t *testing.T) {
	text := "a a b\nb c\na c c\nd a b d\nc\n"
	for _, kind := range []string{config.DMM, config.LDA} {
		t.Run(kind, func(t *testing.T) {
			p := testParams(kind)
			p.NumTopics = 3
			m := newModel(t, text, p)
			s := sampler.New(7)
			require.NoError(t, m.Initialize(s))
			for i := 0; i < 20; i++ {
				require.NoError(t, m.Sweep(s))
				require.NoError(t, m.Counts().CheckCorpus(m.Corpus()), "sweep %d", i)
			}
			requireRowsSumToOne(t, m.Snapshot())
			assert.False(t, math.IsNaN(m.LogLikelihood()))
		})
	}
}

func TestSnapshotIsPure(t *testing.T) {
	for _, kind := range []string{config.DMM, config.LDA} {
		t.Run(kind, func(t *testing.T) {
			m := newModel(t, threeDocs, testParams(kind))
			s := sampler.New(3)
			require.NoError(t, m.Initialize(s))
			require.NoError(t, m.Sweep(s))

			before := m.Counts().Clone()
			first := m.Snapshot()
			m.LogLikelihood()
			require.NoError(t, m.Checkpoint(checkpoint.NewWriter(afero.NewMemMapFs(), ""), "x"))
			second := m.Snapshot()

			assert.True(t, before.Equal(m.Counts()))
			assert.Equal(t, first.Theta, second.Theta)
			assert.Equal(t, first.Assignments, second.Assignments)
		})
	}
}

func TestWarmStartRoundTrip(t *testing.T) {
	for _, kind := range []string{config.DMM, config.LDA} {
		t.Run(kind, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			p := testParams(kind)
			p.NumIters = 5
			m := newModel(t, threeDocs, p)
			require.NoError(t, Run(m, sampler.New(11), checkpoint.NewWriter(fs, "/out")))

			rows, err := ReadWarmStart(fs, "/out/model.topicAssignments")
			require.NoError(t, err)

			data, err := corpus.Load(strings.NewReader(threeDocs))
			require.NoError(t, err)
			ctor, err := GetModel(kind)
			require.NoError(t, err)
			warm, err := ctor(Input{Corpus: data, Params: p, WarmStart: rows})
			require.NoError(t, err)
			require.NoError(t, warm.Initialize(sampler.New(99)))

			assert.True(t, m.Counts().Equal(warm.Counts()))
			assert.Equal(t, m.Snapshot().Assignments, warm.Snapshot().Assignments)
		})
	}
}

func TestSameSeedSameAssignments(t *testing.T) {
	run := func(kind string) string {
		fs := afero.NewMemMapFs()
		p := testParams(kind)
		p.NumIters = 10
		m := newModel(t, threeDocs+"d e a\nb b e\n", p)
		require.NoError(t, Run(m, sampler.New(2024), checkpoint.NewWriter(fs, "")))
		return readString(t, fs, "model.topicAssignments")
	}
	for _, kind := range []string{config.DMM, config.LDA} {
		assert.Equal(t, run(kind), run(kind), kind)
	}
}

func TestDMMOccurrenceRanks(t *testing.T) {
	p := testParams(config.DMM)
	p.NumTopics = 1
	m := newModel(t, "a a a\nb\n", p).(*DMM)
	require.NoError(t, m.Initialize(sampler.New(1)))

	doc := m.Corpus().Docs[0]
	require.Equal(t, []int{1, 2, 3}, doc.Ranks)
	m.Counts().RemoveDocument(doc.Words, 0)

	// one document and one "b" left; V = 2, alpha = beta = 0.1
	weights := make([]float64, 1)
	m.logConditional(doc, weights)
	want := (1 + 0.1) *
		(0 + 0.1 + 0) / (1 + 0.2 + 0) *
		(0 + 0.1 + 1) / (1 + 0.2 + 1) *
		(0 + 0.1 + 2) / (1 + 0.2 + 2)
	assert.InDelta(t, math.Log(want), weights[0], 1e-12)

	m.conditional(doc, weights)
	assert.Equal(t, []float64{1}, weights)

	m.Counts().AddDocument(doc.Words, 0)
	require.NoError(t, m.Counts().CheckCorpus(m.Corpus()))
}

func TestSaveStep(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := testParams(config.LDA)
	p.NumIters = 5
	p.SaveStep = 2
	require.NoError(t, Run(newModel(t, threeDocs, p), sampler.New(1), checkpoint.NewWriter(fs, "/out")))

	for name, want := range map[string]bool{
		"/out/model-2.theta": true,
		"/out/model-4.theta": true,
		"/out/model-5.theta": false,
		"/out/model.theta":   true,
	} {
		ok, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.Equal(t, want, ok, name)
	}
	assert.Contains(t, readString(t, fs, "/out/model.paras"), "-sstep\t2\n")
}

func TestSamplingError(t *testing.T) {
	p := testParams(config.LDA)
	p.Alpha = -100
	m := newModel(t, threeDocs, p)

	err := Run(m, sampler.New(1), checkpoint.NewWriter(afero.NewMemMapFs(), ""))
	var serr *sampler.SamplingError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Contains(t, err.Error(), "iteration 1")
	// the failed step was rolled back
	require.NoError(t, m.Counts().CheckCorpus(m.Corpus()))
}

func TestCheckpointIOError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := Run(newModel(t, threeDocs, testParams(config.DMM)), sampler.New(1), checkpoint.NewWriter(fs, "/out"))
	var ioErr *checkpoint.IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "/out/model.paras", ioErr.Path)
}

func TestWarmStartConsistency(t *testing.T) {
	cases := []struct {
		name string
		file string
		line int
	}{
		{"too few documents", "0 0 0\n1 1\n", 0},
		{"too many documents", "0 0 0\n1 1\n0 0 0\n1\n", 0},
		{"short line", "0 0 0\n1\n0 0 0\n", 2},
		{"negative id", "0 0 0\n1 1\n0 -1 0\n", 3},
		{"bad id", "0 0 0\n1 x\n0 0 0\n", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "init.txt", []byte(tc.file), 0644))
			p := testParams(config.DMM)

			rows, err := ReadWarmStart(fs, "init.txt")
			if err == nil {
				data, lerr := corpus.Load(strings.NewReader(threeDocs))
				require.NoError(t, lerr)
				m, cerr := NewDMM(Input{Corpus: data, Params: p, WarmStart: rows})
				require.NoError(t, cerr)
				err = m.Initialize(sampler.New(1))
			}

			var cerr *ConsistencyError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tc.line, cerr.Line)
		})
	}
}

func TestWarmStartModulo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "init.txt", []byte("4 5 7\n\n3 2\n6 6 9\n"), 0644))
	rows, err := ReadWarmStart(fs, "init.txt")
	require.NoError(t, err)

	data, err := corpus.Load(strings.NewReader(threeDocs))
	require.NoError(t, err)
	m, err := NewLDA(Input{Corpus: data, Params: testParams(config.LDA), WarmStart: rows})
	require.NoError(t, err)
	require.NoError(t, m.Initialize(sampler.New(1)))

	assert.Equal(t, [][]int{{0, 1, 1}, {1, 0}, {0, 0, 1}}, m.Snapshot().Assignments)
	require.NoError(t, m.Counts().CheckCorpus(data))
}

func TestWarmStartMissingFile(t *testing.T) {
	_, err := ReadWarmStart(afero.NewMemMapFs(), "nope.txt")
	var cerr *corpus.CorpusError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "nope.txt", cerr.Path)
}

func TestNewFromFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/corpus.txt", []byte(threeDocs), 0644))
	p := testParams(config.DMM)
	m, err := New(fs, p)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Corpus().NumDocuments())

	var buf bytes.Buffer
	_, err = m.Params().WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "-model\tDMM\n")

	p.Corpus = "/data/missing.txt"
	_, err = New(fs, p)
	var cerr *corpus.CorpusError
	require.True(t, errors.As(err, &cerr))
}
