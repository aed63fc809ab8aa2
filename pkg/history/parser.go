// pkg/history/parser.go

package history

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// headerRE recognizes a zsh extended-history header:
// optional space, ':', optional space, epoch seconds, ':', duration,
// optional space, ';', command text.
var headerRE = regexp.MustCompile(`^\s*:\s*(\d+):\d+\s*;(.*)$`)

// Parser yields a forward-only sequence of Records from a line stream.
// It is not restartable; re-parse by constructing a new Parser over a
// fresh reader.
type Parser struct {
	sc  *bufio.Scanner
	log *zap.Logger

	line    int
	pending *Record
	done    bool
}

// NewParser wraps r. The logger receives parse warnings (malformed
// headers, preamble content); it must not be nil.
func NewParser(r io.Reader, log *zap.Logger) *Parser {
	sc := bufio.NewScanner(r)
	// History lines can be long; a single pasted command may run to
	// megabytes. Grow the scanner's cap well past the default 64 KiB.
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Parser{sc: sc, log: log.Named("history")}
}

// LinesRead reports how many source lines have been consumed so far.
func (p *Parser) LinesRead() int {
	return p.line
}

// Next returns the next Record, or io.EOF when the input is exhausted.
// Malformed headers never drop content: a header-shaped line whose
// timestamp does not parse starts its own always-kept record, so the
// block can never be deleted along with a matching neighbor.
func (p *Parser) Next() (*Record, error) {
	if p.done {
		return nil, io.EOF
	}

	for p.sc.Scan() {
		p.line++
		line := strings.TrimSuffix(p.sc.Text(), "\r")

		if m := headerRE.FindStringSubmatch(line); m != nil {
			flushed := p.pending
			if flushed != nil {
				flushed.EndLine = p.line - 1
			}
			p.pending = p.startRecord(line, m)
			if flushed != nil {
				return flushed, nil
			}
			continue
		}

		if p.pending == nil {
			// Content before the first valid header: accumulate it as
			// the preamble block, which is unconditionally kept.
			p.log.Warn("Line found before first valid history header, keeping as preamble",
				zap.Int("line", p.line))
			p.pending = &Record{Preamble: true}
		}
		p.pending.Lines = append(p.pending.Lines, line)
	}

	if err := p.sc.Err(); err != nil {
		return nil, cerr.Wrapf(err, "reading history near line %d", p.line)
	}

	p.done = true
	if p.pending != nil {
		rec := p.pending
		rec.EndLine = p.line
		p.pending = nil
		return rec, nil
	}
	return nil, io.EOF
}

// startRecord opens the record beginning at a header-shaped line. An
// unparsable timestamp yields a malformed block that is preserved
// unconditionally; any continuation lines that follow belong to it.
func (p *Parser) startRecord(line string, m []string) *Record {
	ts, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		p.log.Warn("Header timestamp unparsable, keeping block unconditionally",
			zap.Int("line", p.line),
			zap.String("digits", m[1]))
		return &Record{Lines: []string{line}, Malformed: true}
	}
	return &Record{
		Lines:     []string{line},
		Timestamp: ts,
		Command:   strings.TrimLeft(m[2], " \t"),
	}
}
