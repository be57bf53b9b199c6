package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello \n"))

	text, err := GetSimpleText(reader, "Say:", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Contains(t, out.String(), "Say:")
}

func TestGetSimpleText_EOFAfterPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	text, err := GetSimpleText(reader, "Say:", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", text)
}

func TestGetMultiline_StopsAtEmptyLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))

	text, err := GetMultiline(reader, "Body:", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	saved := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = saved })

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Contains(t, out.String(), "Password:")
}
