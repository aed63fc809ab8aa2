// pkg/history/parser_test.go

package history

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func parseAll(t *testing.T, input string) []*Record {
	t.Helper()
	p := NewParser(strings.NewReader(input), zap.NewNop())
	var recs []*Record
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestParseSimpleEntries(t *testing.T) {
	input := ": 1756000000:0;ls -la\n" +
		": 1756000100:5;git status\n"
	recs := parseAll(t, input)

	require.Len(t, recs, 2)
	assert.Equal(t, int64(1756000000), recs[0].Timestamp)
	assert.Equal(t, "ls -la", recs[0].Command)
	assert.Equal(t, 1, recs[0].EndLine)
	assert.Equal(t, int64(1756000100), recs[1].Timestamp)
	assert.Equal(t, "git status", recs[1].Command)
	assert.Equal(t, 2, recs[1].EndLine)
}

func TestParseMultilineEntry(t *testing.T) {
	input := ": 1756000000:0;for f in *.log; do\\\n" +
		"  gzip \"$f\"\\\n" +
		"done\n" +
		": 1756000100:0;pwd\n"
	recs := parseAll(t, input)

	require.Len(t, recs, 2)
	assert.Len(t, recs[0].Lines, 3)
	assert.Equal(t, 3, recs[0].EndLine)
	assert.Equal(t, "pwd", recs[1].Command)
}

func TestParsePreamble(t *testing.T) {
	input := "plain line one\n" +
		"plain line two\n" +
		": 1756000000:0;echo hi\n"
	recs := parseAll(t, input)

	require.Len(t, recs, 2)
	assert.True(t, recs[0].Preamble)
	assert.Len(t, recs[0].Lines, 2)
	assert.Equal(t, 2, recs[0].EndLine)
	assert.False(t, recs[1].Preamble)
}

func TestParseMalformedTimestampBlockKept(t *testing.T) {
	// The second line looks like a header but its timestamp overflows
	// int64, so it must open its own always-kept block rather than
	// joining the previous record.
	input := ": 1756000000:0;echo before\n" +
		": 99999999999999999999:0;echo bogus\n" +
		"continuation of bogus\n" +
		": 1756000100:0;echo after\n"
	recs := parseAll(t, input)

	require.Len(t, recs, 3)
	assert.Equal(t, "echo before", recs[0].Command)
	assert.Len(t, recs[0].Lines, 1)

	assert.True(t, recs[1].Malformed)
	assert.True(t, recs[1].AlwaysKept())
	assert.Len(t, recs[1].Lines, 2)
	assert.Equal(t, 3, recs[1].EndLine)

	assert.False(t, recs[2].Malformed)
	assert.Equal(t, "echo after", recs[2].Command)
}

func TestParseHeaderVariations(t *testing.T) {
	recs := parseAll(t, " : 123:0 ; \tspaced out\n")
	require.Len(t, recs, 1)
	assert.Equal(t, int64(123), recs[0].Timestamp)
	assert.Equal(t, "spaced out", recs[0].Command)
}

func TestParseCarriageReturnStripped(t *testing.T) {
	recs := parseAll(t, ": 123:0;dir\r\n")
	require.Len(t, recs, 1)
	assert.Equal(t, "dir", recs[0].Command)
	assert.Equal(t, ": 123:0;dir\n", recs[0].Raw())
}

func TestRawRoundTrip(t *testing.T) {
	input := "lost line\n" +
		": 1756000000:0;cat <<EOF\\\n" +
		"hello\\\n" +
		"EOF\n" +
		": 1756000100:3;uptime\n"
	recs := parseAll(t, input)

	var sb strings.Builder
	for _, rec := range recs {
		sb.WriteString(rec.Raw())
	}
	assert.Equal(t, input, sb.String())
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser(strings.NewReader(""), zap.NewNop())
	_, err := p.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, p.LinesRead())
}

func TestLinesRead(t *testing.T) {
	input := ": 1:0;a\n: 2:0;b\n: 3:0;c\n"
	p := NewParser(strings.NewReader(input), zap.NewNop())
	n := 0
	for {
		_, err := p.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, p.LinesRead())
}
