package extract

import (
	"errors"
	"fmt"
)

// ErrNoTable means a document (or page) yielded no detectable table rows.
var ErrNoTable = errors.New("no table found")

// ExtractionError wraps any failure to read a distributor file: corrupt or
// encrypted PDFs, unsupported formats, truncated uploads. Batch processing
// catches it per file and turns it into a warning.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
