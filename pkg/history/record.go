// pkg/history/record.go

package history

import "strings"

// Record is one logical history entry: a timestamped header line plus
// any continuation lines, or the preamble block that precedes the
// first valid header. Lines hold the raw text exactly as read, with
// trailing carriage returns stripped and no line terminators.
type Record struct {
	Lines     []string
	Timestamp int64
	Command   string
	Preamble  bool
	Malformed bool // header-shaped block whose timestamp could not be parsed
	EndLine   int  // 1-based number of the record's last line in the source file
}

// AlwaysKept reports whether the record is exempt from deletion
// decisions: preamble content and malformed-header blocks are
// preserved unconditionally.
func (r *Record) AlwaysKept() bool {
	return r.Preamble || r.Malformed
}

// Raw reassembles the record's on-disk bytes. Concatenating Raw over
// all records of a file in order reproduces the original content,
// modulo carriage-return normalization.
func (r *Record) Raw() string {
	return strings.Join(r.Lines, "\n") + "\n"
}
