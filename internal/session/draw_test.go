package session

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"sockui/internal/errors"
)

// boxMenu is a 3x11 frame mixing 1- and 3-byte codepoints.
var boxMenu = []rune("┌─────────┐" + "│test menu│" + "└─────────┘")

// expected renders cells the straightforward way.
func expected(cells []rune, cols int) []byte {
	var b bytes.Buffer
	b.Write(seqClearHome)
	for i := 0; i < len(cells); i += cols {
		b.WriteString(string(cells[i : i+cols]))
		b.Write(seqRowEnd)
	}
	return b.Bytes()
}

func drawWith(t *testing.T, scratch int, cells []rune, rows, cols int) []byte {
	t.Helper()
	s, peer, _ := attached(t, Options{ScratchBuffer: scratch})
	if err := s.Draw(cells, rows, cols); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return readPeer(t, peer)
}

func TestDraw_Simple(t *testing.T) {
	got := drawWith(t, 0, []rune("abcdef"), 2, 3)
	want := "\x1b[2J\x1b[0;0Habc\r\ndef\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDraw_BoxMenuScratchIndependent(t *testing.T) {
	small := drawWith(t, MinScratchBuffer, boxMenu, 3, 11)
	large := drawWith(t, 4096, boxMenu, 3, 11)

	if !bytes.Equal(small, large) {
		t.Fatalf("16-byte scratch output differs:\n%q\n%q", small, large)
	}
	if !bytes.Equal(small, expected(boxMenu, 11)) {
		t.Fatalf("unexpected render %q", small)
	}

	body := strings.TrimPrefix(string(small), string(seqClearHome))
	lines := strings.Split(body, "\r\n")
	if len(lines) != 4 || lines[3] != "" {
		t.Fatalf("want three CRLF-terminated rows, got %q", lines)
	}
	for i, line := range lines[:3] {
		if n := utf8.RuneCountInString(line); n != 11 {
			t.Errorf("row %d has %d codepoints", i, n)
		}
	}
}

func TestDraw_NeverSplitsCodepoints(t *testing.T) {
	// One of each encoded length, repeated across an awkward width.
	pattern := []rune{'a', 'é', '─', '😀', 'Z', 'ж', '€'}
	const rows, cols = 5, 7
	cells := make([]rune, rows*cols)
	for i := range cells {
		cells[i] = pattern[(i*3)%len(pattern)]
	}
	want := expected(cells, cols)

	for scratch := MinScratchBuffer; scratch <= 64; scratch++ {
		got := drawWith(t, scratch, cells, rows, cols)
		if !bytes.Equal(got, want) {
			t.Fatalf("scratch %d: got %q, want %q", scratch, got, want)
		}
		body := bytes.TrimPrefix(got, seqClearHome)
		for i, line := range bytes.Split(bytes.TrimSuffix(body, seqRowEnd), seqRowEnd) {
			if !utf8.Valid(line) || utf8.RuneCount(line) != cols {
				t.Fatalf("scratch %d: row %d = %q", scratch, i, line)
			}
		}
	}
}

func TestDraw_SingleColumn(t *testing.T) {
	cells := []rune("😀é─")
	got := drawWith(t, MinScratchBuffer, cells, 3, 1)
	if !bytes.Equal(got, expected(cells, 1)) {
		t.Errorf("got %q", got)
	}
}

func TestDraw_BadGrid(t *testing.T) {
	tests := []struct {
		name       string
		cells      []rune
		rows, cols int
	}{
		{"zero rows", []rune("ab"), 0, 2},
		{"zero cols", []rune("ab"), 2, 0},
		{"negative", []rune("ab"), -1, -2},
		{"too few cells", []rune("abc"), 2, 2},
		{"too many cells", []rune("abcde"), 2, 2},
		{"empty", nil, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, peer, m := attached(t, Options{})
			err := s.Draw(tt.cells, tt.rows, tt.cols)
			if !errors.Is(err, errors.ErrBadGrid) {
				t.Fatalf("Draw() = %v, want ErrBadGrid", err)
			}
			if got := readPeer(t, peer); len(got) != 0 {
				t.Errorf("rejected grid still wrote %q", got)
			}
			if m.Draws() != 0 {
				t.Errorf("rejected grid counted as a draw")
			}
		})
	}
}

func TestDraw_IllegalCodepoint(t *testing.T) {
	s, _, m := attached(t, Options{})
	cells := []rune{'a', 0xD800, 'b', 'c'}

	err := s.Draw(cells, 2, 2)
	if errors.KindOf(err) != errors.KindIllegalSequence {
		t.Fatalf("Draw() = %v, want illegal sequence", err)
	}
	if errors.Describe(err) != "illegal Unicode sequence" {
		t.Errorf("Describe() = %q", errors.Describe(err))
	}
	if m.DrawFailures() != 1 {
		t.Errorf("DrawFailures() = %d, want 1", m.DrawFailures())
	}
}

func TestDraw_CountsBytes(t *testing.T) {
	s, peer, m := attached(t, Options{})
	before := m.TotalBytesOut()
	if err := s.Draw(boxMenu, 3, 11); err != nil {
		t.Fatal(err)
	}
	n := len(readPeer(t, peer))
	if got := m.TotalBytesOut() - before; got != int64(n) {
		t.Errorf("BytesSent counted %d, peer received %d", got, n)
	}
	if m.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", m.Draws())
	}
}
