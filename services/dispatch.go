// services/dispatch.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aprovacriativos/aprova_backend/config"
	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/utils"
)

// ChannelDispatcher routes verification codes to the email or WhatsApp
// channel. It only builds the payload and hands off; delivery itself is
// the gateway's problem.
type ChannelDispatcher struct {
	cfg      *config.Config
	whatsapp *utils.WhatsAppService
}

// NewChannelDispatcher creates the production code sender
func NewChannelDispatcher(cfg *config.Config) *ChannelDispatcher {
	return &ChannelDispatcher{
		cfg:      cfg,
		whatsapp: utils.NewWhatsAppService(cfg),
	}
}

// Send dispatches the code through the channel implied by the
// identifier kind.
func (d *ChannelDispatcher) Send(ctx context.Context, channel string, approver *models.Approver, code string, ttl time.Duration) error {
	switch channel {
	case utils.IdentifierEmail:
		return utils.SendCodeByEmail(d.cfg, approver.Email, approver.FullName, code, ttl)
	case utils.IdentifierPhone:
		return d.whatsapp.SendCode(approver.Phone, code)
	default:
		return fmt.Errorf("unknown dispatch channel %q", channel)
	}
}
