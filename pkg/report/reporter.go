// Package report aggregates suite reports into run summaries and
// renders them.
package report

import "io"

// Reporter defines the interface for rendering run summaries.
type Reporter interface {
	// Generate renders the summary.
	Generate(summary *Summary) ([]byte, error)

	// Write renders the summary to w.
	Write(w io.Writer, summary *Summary) error
}
