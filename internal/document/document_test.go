package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFilename(t *testing.T) {
	cases := map[string]string{
		"report":        "report.pdf",
		"report.pdf":    "report.pdf",
		"Report.PDF":    "Report.PDF",
		"  quarterly  ": "quarterly.pdf",
		"a.pdf.txt":     "a.pdf.txt.pdf",
		`in"voice`:      "in_voice.pdf",
		"../etc/passwd": ".._etc_passwd.pdf",
		"line\r\nbreak": "line__break.pdf",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeFilename(in), "input %q", in)
	}
}

func TestNormalizeFilename_NoDoubleExtension(t *testing.T) {
	once := NormalizeFilename("report")
	require.Equal(t, once, NormalizeFilename(once))
	require.Equal(t, 1, strings.Count(once, Extension))
}

func TestValidate_Valid(t *testing.T) {
	errs := Validate(&Request{Name: "report", Content: "Hello"})
	require.Empty(t, errs)
}

func TestValidate_MissingFields(t *testing.T) {
	errs := Validate(&Request{})
	require.Len(t, errs, 2)
	require.Equal(t, "name", errs[0].Field)
	require.Equal(t, "required", errs[0].Rule)
	require.Equal(t, "content", errs[1].Field)
	require.True(t, errors.Is(errs, ErrValidation))
}

func TestValidate_BlankAndTooLong(t *testing.T) {
	errs := Validate(&Request{Name: strings.Repeat("x", 256), Content: "   \t"})
	require.Len(t, errs, 2)
	require.Equal(t, "max", errs[0].Rule)
	require.Contains(t, errs[0].Message, "255")
	require.Equal(t, "notblank", errs[1].Rule)
	require.Contains(t, errs.Error(), "content: must not be empty")
}

func TestValidate_Nil(t *testing.T) {
	errs := Validate(nil)
	require.Len(t, errs, 1)
	require.Equal(t, "request", errs[0].Field)
}

func TestKind(t *testing.T) {
	require.Equal(t, "none", Kind(nil))
	require.Equal(t, "io", Kind(fmt.Errorf("%w: broken pipe", ErrIO)))
	require.Equal(t, "render", Kind(fmt.Errorf("wrap: %w", ErrRender)))
	require.Equal(t, "storage", Kind(ErrStorage))
	require.Equal(t, "archive", Kind(ErrArchive))
	require.Equal(t, "not_found", Kind(ErrNotFound))
	require.Equal(t, "validation", Kind(FieldErrors{{Field: "name"}}))
	require.Equal(t, "unknown", Kind(errors.New("boom")))
}
