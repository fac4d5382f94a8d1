package signature

import (
	"go.uber.org/fx"

	"github.com/greenlake/portal/internal/config"
)

// Module wires the webhook signature verifier.
var Module = fx.Provide(func(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.WebhookSecret, cfg.WebhookVerifySignature)
})
