package session

// Control sequences written to the client terminal.
var (
	seqAttach    = []byte("\x1b[?1049h\x1b[2J\x1b[0;0H\x1b[?25l") // alt screen, clear, home, hide cursor
	seqDetach    = []byte("\x1b[?2J\x1b[?1049l\x1b[?25h")         // selective clear, main screen, show cursor
	seqClear     = []byte("\x1b[2J")
	seqClearHome = []byte("\x1b[2J\x1b[0;0H")
	seqSizeQuery = []byte("\x1b[s\x1b[9999;9999H\x1b[6n\x1b[u") // save, park bottom-right, report, restore
	seqRowEnd    = []byte("\r\n")
)

// RedrawByte is the form-feed (Ctrl-L) byte that requests a repaint.
// Recv consumes it and never returns it.
const RedrawByte = 0x0C
