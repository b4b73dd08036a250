package orderid

import (
	"strconv"
	"testing"
	"time"

	"github.com/merchhaus/backoffice/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestNextIsMonotonicWithinPartition(t *testing.T) {
	clk := clock.NewFakeClock(Epoch.Add(24 * time.Hour))
	gen := NewWithClock(TypeCampaign, Epoch, clk)

	prev := int64(-1)
	for i := 0; i < 5000; i++ {
		if i%7 == 0 {
			clk.Advance(time.Millisecond)
		}
		raw := gen.Next()
		id, err := strconv.ParseInt(raw, 10, 64)
		assert.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNextEmbedsOrderType(t *testing.T) {
	clk := clock.NewFakeClock(Epoch.Add(time.Hour))

	for _, typ := range []OrderType{TypeCampaign, TypeCatalogue, TypeDuplicate, TypeGETEC, TypeBVG} {
		gen := NewWithClock(typ, Epoch, clk)
		id, err := strconv.ParseInt(gen.Next(), 10, 64)
		assert.NoError(t, err)
		assert.Equal(t, int64(typ), (id>>seqBits)&((1<<typeBits)-1))
	}
}

func TestNextUniqueUnderBurst(t *testing.T) {
	clk := clock.NewFakeClock(Epoch.Add(time.Minute))
	gen := NewWithClock(TypeDuplicate, Epoch, clk)

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := gen.Next()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestLaterTimeYieldsLargerID(t *testing.T) {
	clk := clock.NewFakeClock(Epoch.Add(time.Hour))
	gen := NewWithClock(TypeCatalogue, Epoch, clk)

	first, _ := strconv.ParseInt(gen.Next(), 10, 64)
	clk.Advance(time.Second)
	second, _ := strconv.ParseInt(gen.Next(), 10, 64)
	assert.Greater(t, second, first)
}
