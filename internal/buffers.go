package internal

import (
	"bytes"
	"sync"
)

// Buffers larger than this are dropped instead of pooled so one huge
// document does not pin its memory for the life of the process.
const maxPooledBuffer = 1 << 20

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

func GetBuffer() *bytes.Buffer {
	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func PutBuffer(b *bytes.Buffer) {
	if b != nil && b.Cap() <= maxPooledBuffer {
		bufPool.Put(b)
	}
}
