package pdf

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// textOperand matches the string operand of a Tj text-showing operator.
var textOperand = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)\s*Tj`)

func uncompressed() Options {
	o := DefaultOptions()
	o.NoCompress = true
	return o
}

func textBlocks(t *testing.T, content string) [][]byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewFPDFRenderer(uncompressed()).Render(&buf, content))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	var out [][]byte
	for _, m := range textOperand.FindAllSubmatch(buf.Bytes(), -1) {
		out = append(out, m[1])
	}
	return out
}

func TestFPDFRenderer_SingleTextBlock(t *testing.T) {
	blocks := textBlocks(t, "Hello")
	require.Len(t, blocks, 1, "expected exactly one text block")
	require.Equal(t, "Hello", string(blocks[0]))
}

func TestFPDFRenderer_DefaultsCompress(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFPDFRenderer(Options{}).Render(&buf, "Hello"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	require.Contains(t, buf.String(), "/FlateDecode")
	require.Empty(t, textOperand.FindAll(buf.Bytes(), -1))
}

func TestFPDFRenderer_NoCompress(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFPDFRenderer(uncompressed()).Render(&buf, "Hello"))
	require.NotContains(t, buf.String(), "/FlateDecode")
}

func TestFPDFRenderer_EscapesParentheses(t *testing.T) {
	blocks := textBlocks(t, "total (net)")
	require.Len(t, blocks, 1)
	require.Equal(t, `total \(net\)`, string(blocks[0]))
}

func TestFPDFRenderer_Cp1252Text(t *testing.T) {
	blocks := textBlocks(t, "café")
	require.Len(t, blocks, 1)
	require.Equal(t, []byte("caf\xe9"), blocks[0])
}

// Core fonts cannot show runes outside cp1252; each one becomes a dot.
func TestFPDFRenderer_LossyOutsideCp1252(t *testing.T) {
	blocks := textBlocks(t, "日本 ok")
	require.Len(t, blocks, 1)
	require.Equal(t, ".. ok", string(blocks[0]))
}

func TestFPDFRenderer_UnknownPageSize(t *testing.T) {
	o := uncompressed()
	o.PageSize = "Z9"
	var buf bytes.Buffer
	err := NewFPDFRenderer(o).Render(&buf, "Hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "build pdf")
	require.Zero(t, buf.Len())
}

func TestFPDFRenderer_WriteFailure(t *testing.T) {
	err := NewFPDFRenderer(uncompressed()).Render(failingWriter{}, "Hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "write pdf")
}
