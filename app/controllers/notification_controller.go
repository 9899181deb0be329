package controllers

import (
	"time"

	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/middleware"
)

// NotificationController serves the in-app notification inbox backed by the
// database channel.
type NotificationController struct {
	inbox *services.InboxService
}

func NewNotificationController() *NotificationController {
	return &NotificationController{inbox: services.NewInboxService()}
}

// Index handles GET /api/notifications.
func (nc *NotificationController) Index(c *ctx.Context) {
	identity, ok := middleware.IdentityFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	page, perPage := pageParams(c)
	records, p, err := nc.inbox.List(identity.ID, identity.Role, page, perPage)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(paged(records, p))
}

// MarkRead handles POST /api/notifications/{id}/read.
func (nc *NotificationController) MarkRead(c *ctx.Context) {
	identity, ok := middleware.IdentityFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := nc.inbox.MarkRead(identity.ID, identity.Role, id, time.Now()); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]interface{}{"read": true})
}
