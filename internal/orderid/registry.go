package orderid

import "github.com/merchhaus/backoffice/internal/clock"

// Registry holds one generator per order type so identifiers from different
// origins never collide.
type Registry struct {
	gens map[OrderType]*Generator
}

func NewRegistry(clk clock.Clock) *Registry {
	r := &Registry{gens: make(map[OrderType]*Generator)}
	for _, typ := range []OrderType{TypeCampaign, TypeCatalogue, TypeDuplicate, TypeGETEC, TypeBVG} {
		r.gens[typ] = NewWithClock(typ, Epoch, clk)
	}
	return r
}

// Next returns the next identifier for the order type. Unknown types fall
// back to the campaign partition.
func (r *Registry) Next(typ OrderType) string {
	gen, ok := r.gens[typ]
	if !ok {
		gen = r.gens[TypeCampaign]
	}
	return gen.Next()
}
