package session

import (
	"fmt"

	"sockui/internal/errors"
	"sockui/internal/transcode"
)

// Draw clears the client screen and renders cells as rows of cols
// codepoints, each row terminated by CR LF.  The grid is encoded through
// the scratch buffer in chunks; row breaks always fall on codepoint
// boundaries regardless of chunk size.
//
// On error the screen may show a partial frame; drawing again repaints
// it completely.
func (s *Session) Draw(cells []rune, rows, cols int) error {
	if s.fd < 0 {
		return errors.ErrNotAttached
	}
	if rows <= 0 || cols <= 0 || len(cells) != rows*cols {
		return fmt.Errorf("%w: %dx%d grid with %d cells", errors.ErrBadGrid, rows, cols, len(cells))
	}

	err := s.draw(cells, cols)
	s.metrics.Draw(err == nil)
	if err != nil {
		s.logger.Debug("draw %dx%d: %v", rows, cols, err)
	}
	return err
}

func (s *Session) draw(cells []rune, cols int) error {
	if err := s.write(seqClearHome); err != nil {
		return err
	}

	total := 0
	for total < len(cells) {
		n, nbytes, err := transcode.Encode(s.scratch, cells[total:])
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("scratch buffer of %d bytes cannot hold codepoint %d", len(s.scratch), total)
		}

		chunk := s.scratch[:nbytes]
		for n > 0 {
			untilRow := cols - total%cols
			if n < untilRow {
				if err := s.write(chunk); err != nil {
					return err
				}
				total += n
				break
			}

			off := transcode.OffsetAfter(chunk, untilRow)
			if off <= 0 || off > len(chunk) {
				return fmt.Errorf("row split at byte %d outside %d-byte chunk", off, len(chunk))
			}
			if err := s.write(chunk[:off]); err != nil {
				return err
			}
			if err := s.write(seqRowEnd); err != nil {
				return err
			}
			chunk = chunk[off:]
			total += untilRow
			n -= untilRow
		}
	}
	return nil
}
