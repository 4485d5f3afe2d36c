package provider

import (
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// defaultWindowSize is the maximum number of bytes kept in the sliding
	// window buffer when NewReader isn't given one explicitly, bounding
	// memory use for arbitrarily large streams while still allowing
	// reasonable lookahead for multi-byte matchers.
	defaultWindowSize = 64 * 1024

	// defaultReadChunkSize is how many bytes are requested from the reader
	// at a time when the window needs more data and NewReader wasn't given
	// a chunk size explicitly.
	defaultReadChunkSize = 8 * 1024
)

// sharedWindow holds the sliding-window buffer state. ReaderProvider itself
// has no clones today (the evaluator core never clones a provider — only
// the teacher's tokenizer-level Stream did that for backtracking), but the
// state is kept in its own struct, tagged with a session id, so a future
// peek-handle or derived cursor can share it the same way the teacher's
// bufferedStreamImpl shares sharedBuffer across clones.
type sharedWindow struct {
	id    uuid.UUID
	data  []byte
	start int64 // absolute offset of data[0]
	eof   bool
	err   error
}

// ReaderProvider is a bounded streaming provider over an io.Reader. It
// maintains a constant-memory sliding window so arbitrarily large inputs
// can be parsed without buffering them in full, at the cost of bounding how
// far a matcher can look ahead before consuming.
type ReaderProvider struct {
	reader  io.Reader
	shared  *sharedWindow
	readBuf []byte
	log     *zap.Logger

	windowSize int
	// discardThreshold and discardMargin control when and how much of the
	// window gets discarded once the cursor has moved well past its start;
	// discarding too eagerly would break lookahead just behind the cursor.
	discardThreshold int
	discardMargin    int
}

// NewReader constructs a streaming provider over r. windowSize caps the
// resident sliding window and readChunkSize is the per-refill read size;
// either left <= 0 falls back to defaultWindowSize/defaultReadChunkSize
// (normally sourced from config.Config.ReaderWindowSize/ReaderChunkSize).
// An optional logger records buffer refill/discard events at Debug; pass
// nil for a no-op logger.
func NewReader(r io.Reader, windowSize, readChunkSize int, log *zap.Logger) *ReaderProvider {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	if readChunkSize <= 0 {
		readChunkSize = defaultReadChunkSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &ReaderProvider{
		reader: r,
		shared: &sharedWindow{
			id:   uuid.New(),
			data: make([]byte, 0, windowSize),
		},
		readBuf:          make([]byte, readChunkSize),
		log:              log,
		windowSize:       windowSize,
		discardThreshold: windowSize / 4,
		discardMargin:    windowSize / 8,
	}
	return p
}

func (p *ReaderProvider) IsDirect() bool { return false }

// ConsumedCount reports the absolute offset of the window start, i.e. how
// many bytes have been permanently dropped.
func (p *ReaderProvider) ConsumedCount() int {
	return int(p.shared.start)
}

func (p *ReaderProvider) posInWindow(i int) int {
	return i - int(p.shared.start)
}

// ensure makes sure bytes [i, i+length) are available in the window,
// refilling from the reader and discarding consumed-and-safe bytes as
// needed.
func (p *ReaderProvider) ensure(i, length int) error {
	need := i + length
	for {
		pos := p.posInWindow(i)
		if pos < 0 {
			// Already discarded: the caller asked for bytes behind the
			// window start, which this provider cannot recover.
			return errors.Wrap(ErrEndOfStream, "byteeval: requested offset already dropped")
		}
		have := len(p.shared.data)
		if p.posInWindow(need) <= have {
			return nil
		}
		if p.shared.eof {
			if p.shared.err != nil {
				return errors.Wrap(p.shared.err, "byteeval: reader error")
			}
			return ErrEndOfStream
		}
		p.discardBehind(i)
		p.refill()
	}
}

func (p *ReaderProvider) discardBehind(cursor int) {
	pos := p.posInWindow(cursor)
	if len(p.shared.data) < p.windowSize || pos <= p.discardThreshold {
		return
	}
	drop := pos - p.discardMargin
	if drop <= 0 || drop >= len(p.shared.data) {
		return
	}
	p.shared.data = p.shared.data[drop:]
	p.shared.start += int64(drop)
	p.log.Debug("provider window discarded",
		zap.String("session", p.shared.id.String()),
		zap.Int("bytes", drop),
		zap.Int64("window_start", p.shared.start),
	)
}

func (p *ReaderProvider) refill() {
	if p.shared.eof {
		return
	}
	n, err := p.reader.Read(p.readBuf)
	if n > 0 {
		p.shared.data = append(p.shared.data, p.readBuf[:n]...)
		p.log.Debug("provider window refilled",
			zap.String("session", p.shared.id.String()),
			zap.Int("bytes", n),
			zap.Int("window_len", len(p.shared.data)),
		)
	}
	if err != nil {
		if err == io.EOF {
			p.shared.eof = true
		} else {
			p.shared.err = err
			p.shared.eof = true
		}
	}
}

func (p *ReaderProvider) ReserveItem(i int) error {
	return p.ensure(i, 1)
}

func (p *ReaderProvider) ReserveSlice(i, length int) error {
	if length == 0 {
		return nil
	}
	return p.ensure(i, length)
}

func (p *ReaderProvider) ViewItem(i int) byte {
	return p.shared.data[p.posInWindow(i)]
}

func (p *ReaderProvider) ViewSlice(i, length int) []byte {
	pos := p.posInWindow(i)
	return p.shared.data[pos : pos+length]
}

// Drop advances the permanent cursor by n bytes, immediately discarding them
// from the window (the evaluator never re-reads a byte once dropped, so
// there is nothing to gain by deferring it the way discardBehind defers
// discarding bytes the cursor has merely passed but not yet dropped). n is
// capped at the number of bytes currently in the window.
func (p *ReaderProvider) Drop(n int) {
	if n <= 0 {
		return
	}
	avail := len(p.shared.data)
	if n > avail {
		n = avail
	}
	p.shared.data = p.shared.data[n:]
	p.shared.start += int64(n)
}

// SessionID returns the uuid tagging this provider's shared window, for log
// correlation across derived views.
func (p *ReaderProvider) SessionID() uuid.UUID {
	return p.shared.id
}
