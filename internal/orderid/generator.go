// Package orderid generates the externally facing order identifiers stamped
// onto pending orders. IDs are time-ordered within an order-type partition and
// unique within a process; cross-process uniqueness is not coordinated.
package orderid

import (
	"strconv"
	"sync"
	"time"

	"github.com/merchhaus/backoffice/internal/clock"
)

// OrderType partitions the identifier space per order origin.
type OrderType int64

const (
	TypeCampaign  OrderType = 0
	TypeCatalogue OrderType = 1
	TypeDuplicate OrderType = 2
	TypeGETEC     OrderType = 3
	TypeBVG       OrderType = 4
)

// Epoch anchors the elapsed-time component of every generated identifier.
var Epoch = time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC)

const (
	typeBits = 5
	seqBits  = 12
	seqMask  = (1 << seqBits) - 1
)

// Generator produces decimal identifiers composed of milliseconds since Epoch,
// the order-type tag, and a wrapping sequence counter.
type Generator struct {
	mu    sync.Mutex
	typ   OrderType
	epoch time.Time
	clk   clock.Clock
	seq   int64
	last  int64
}

func New(typ OrderType) *Generator {
	return NewWithClock(typ, Epoch, clock.SystemClock{})
}

func NewWithClock(typ OrderType, epoch time.Time, clk clock.Clock) *Generator {
	return &Generator{typ: typ, epoch: epoch, clk: clk, last: -1}
}

// Next returns the next identifier. Successive calls yield strictly
// increasing values; the sequence counter absorbs same-millisecond bursts and
// rolls the timestamp forward if it wraps.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.clk.Now().UTC().Sub(g.epoch).Milliseconds()
	if ms < g.last {
		ms = g.last
	}

	if ms == g.last {
		g.seq = (g.seq + 1) & seqMask
		if g.seq == 0 {
			ms++
		}
	} else {
		g.seq = 0
	}
	g.last = ms

	id := ms<<(typeBits+seqBits) | int64(g.typ)<<seqBits | g.seq
	return strconv.FormatInt(id, 10)
}
