package linear

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/greenlake/portal/internal/config"
)

// Module exposes the Linear client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.Linear.APIURL, p.Config.Linear.APIKey, p.Logger)
}
