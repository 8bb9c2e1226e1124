package model

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/bobonovski/ldadmm/corpus"
	"github.com/bobonovski/ldadmm/sstable"
)

// ReadWarmStart reads a topic assignment file as written to
// ".topicAssignments": one line of topic ids per document. Rows are
// returned as found, blank lines included; they are matched against
// the corpus when the model is initialized.
func ReadWarmStart(fs afero.Fs, path string) ([][]int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &corpus.CorpusError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := sstable.ReadIntRows(f)
	if err != nil {
		return nil, &ConsistencyError{Reason: fmt.Sprintf("%s: %v", path, err)}
	}
	return rows, nil
}

// alignWarmStart pairs the non-blank rows with the documents of data and
// checks that every row carries one topic id per word. Ids are reduced
// modulo numTopics so files from a model of another size still load.
func alignWarmStart(data *corpus.Corpus, rows [][]int, numTopics int) ([][]int, error) {
	aligned := make([][]int, 0, data.NumDocuments())
	lines := make([]int, 0, data.NumDocuments())
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		aligned = append(aligned, row)
		lines = append(lines, i+1)
	}
	if len(aligned) != data.NumDocuments() {
		return nil, &ConsistencyError{Reason: fmt.Sprintf(
			"assignment file has %d documents, corpus has %d", len(aligned), data.NumDocuments())}
	}

	total := 0
	topics := make([][]int, len(aligned))
	for d, row := range aligned {
		if len(row) != data.Docs[d].Len() {
			return nil, &ConsistencyError{Line: lines[d], Reason: fmt.Sprintf(
				"%d topic ids for a document of %d words", len(row), data.Docs[d].Len())}
		}
		topics[d] = make([]int, len(row))
		for i, id := range row {
			if id < 0 {
				return nil, &ConsistencyError{Line: lines[d], Reason: fmt.Sprintf("negative topic id %d", id)}
			}
			topics[d][i] = id % numTopics
		}
		total += len(row)
	}
	if total != data.NumWords {
		return nil, &ConsistencyError{Reason: fmt.Sprintf(
			"assignment file has %d topic ids, corpus has %d words", total, data.NumWords)}
	}
	return topics, nil
}
