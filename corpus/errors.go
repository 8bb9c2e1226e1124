package corpus

import "fmt"

// CorpusError reports an input stream that cannot be read or parsed:
// the corpus itself, a vocabulary, or a pretrained model artifact.
// It is fatal for the run.
type CorpusError struct {
	Path string // empty when reading from an anonymous stream
	Line int    // 1-based, zero when the failure is not tied to a line
	Err  error
}

func (e *CorpusError) Error() string {
	src := e.Path
	if src == "" {
		src = "<stream>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("corpus error: %s:%d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("corpus error: %s: %v", src, e.Err)
}

func (e *CorpusError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors walk through the error
func (e *CorpusError) Cause() error { return e.Err }
