package output

import (
	"bufio"
	"io"

	"github.com/inodb/vibe-splice/internal/splice"
)

// WriteExclusions writes one "transcript_id<TAB>reason" line per excluded
// transcript, not_found first.
func WriteExclusions(w io.Writer, x *splice.Exclusions) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("#transcript_id\treason\n"); err != nil {
		return err
	}
	for _, group := range []struct {
		ids    []string
		reason splice.Reason
	}{
		{x.NotFound, splice.ReasonNotFound},
		{x.LengthMismatch, splice.ReasonLengthMismatch},
	} {
		for _, id := range group.ids {
			if _, err := bw.WriteString(id + "\t" + string(group.reason) + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
