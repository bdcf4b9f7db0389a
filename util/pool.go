package util

import "sync"

// RelayBufSize is the copy buffer size for the client relay.  Terminal
// traffic is keystrokes one way and a few KiB of frames the other.
const RelayBufSize = 4 * 1024

// BufPool provides reusable byte buffers for the client relay.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, RelayBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
