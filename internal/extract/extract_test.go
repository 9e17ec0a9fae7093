package extract

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractRejectsGarbage(t *testing.T) {
	e := New(DefaultLayout(), zerolog.Nop())

	for _, content := range [][]byte{nil, []byte("not a pdf at all")} {
		_, err := e.Extract(content, "PBF_X", true)
		if err == nil {
			t.Fatalf("Extract(%q) succeeded", content)
		}
		var xerr *ExtractionError
		if !errors.As(err, &xerr) {
			t.Errorf("err = %T, want *ExtractionError", err)
			continue
		}
		if xerr.File != "PBF_X" {
			t.Errorf("error carries file %q, want PBF_X", xerr.File)
		}
	}
}

func TestExtractionErrorUnwrap(t *testing.T) {
	err := &ExtractionError{File: "a.pdf", Err: ErrNoTable}
	if !errors.Is(err, ErrNoTable) {
		t.Error("ExtractionError must unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}
