package orderid

import "go.uber.org/fx"

var Module = fx.Module("orderid",
	fx.Provide(NewRegistry),
)
