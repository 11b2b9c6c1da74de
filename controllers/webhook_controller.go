package controllers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lattelane/pkg/resp"
	"lattelane/pkg/yoco"
	"lattelane/services"
)

// WebhookController receives payment events from Yoco. It is the only
// unauthenticated write path in the API, so the HMAC check comes first
// and everything after it stays idempotent.
type WebhookController struct {
	Service *services.WebhookService
	Secret  string
	Log     *zap.Logger
}

func NewWebhookController(s *services.WebhookService, secret string, log *zap.Logger) *WebhookController {
	return &WebhookController{Service: s, Secret: secret, Log: log}
}

// POST /webhooks/yoco
func (ctl *WebhookController) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		resp.BadRequest(c, "cannot read body")
		return
	}

	if err := yoco.VerifySignature(c.Request.Header, body, ctl.Secret); err != nil {
		ctl.Log.Warn("webhook signature rejected", zap.Error(err))
		resp.Unauthorized(c, "invalid signature")
		return
	}

	ev, err := yoco.ParseEvent(body)
	if err != nil {
		resp.BadRequest(c, "malformed event")
		return
	}

	result, err := ctl.Service.Process(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, services.ErrBadMetadata) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, result)
}
