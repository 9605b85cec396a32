package redis

import "sync"

// requestBufferPool recycles the byte slices used to encode requests, so
// steady-state command traffic does not allocate per call.
type requestBufferPool struct {
	pool sync.Pool
}

func newRequestBufferPool(initialSize int) *requestBufferPool {
	return &requestBufferPool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, 0, initialSize)
				return &buf
			},
		},
	}
}

func (p *requestBufferPool) Get() *[]byte {
	return p.pool.Get().(*[]byte)
}

func (p *requestBufferPool) Put(buf *[]byte) {
	*buf = (*buf)[:0]
	p.pool.Put(buf)
}
