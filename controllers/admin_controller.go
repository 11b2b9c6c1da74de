package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lattelane/pkg/resp"
	"lattelane/pkg/yoco"
	"lattelane/services"
)

type AdminController struct {
	Cleanup *services.CleanupService
	Gateway *yoco.Client
	BaseURL string
}

func NewAdminController(cleanup *services.CleanupService, gateway *yoco.Client, baseURL string) *AdminController {
	return &AdminController{Cleanup: cleanup, Gateway: gateway, BaseURL: baseURL}
}

// POST /admin/orders/cleanup
func (ctl *AdminController) CleanupDrafts(c *gin.Context) {
	deleted, err := ctl.Cleanup.Sweep()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": deleted})
}

type registerWebhookReq struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url"`
}

// POST /admin/webhooks
func (ctl *AdminController) RegisterWebhook(c *gin.Context) {
	var req registerWebhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	url := req.URL
	if url == "" {
		url = ctl.BaseURL + "/api/webhooks/yoco"
	}
	reg, err := ctl.Gateway.RegisterWebhook(c.Request.Context(), req.Name, url)
	if err != nil {
		ctl.gatewayError(c, err)
		return
	}
	resp.Created(c, reg)
}

// GET /admin/webhooks
func (ctl *AdminController) ListWebhooks(c *gin.Context) {
	regs, err := ctl.Gateway.ListWebhooks(c.Request.Context())
	if err != nil {
		ctl.gatewayError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": regs})
}

// DELETE /admin/webhooks/:id
func (ctl *AdminController) DeleteWebhook(c *gin.Context) {
	if err := ctl.Gateway.DeleteWebhook(c.Request.Context(), c.Param("id")); err != nil {
		ctl.gatewayError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}

func (ctl *AdminController) gatewayError(c *gin.Context, err error) {
	var (
		apiErr *yoco.APIError
		trErr  *yoco.TransportError
	)
	if errors.As(err, &apiErr) || errors.As(err, &trErr) {
		resp.BadGateway(c, "payment gateway error")
		return
	}
	resp.ServerError(c, err)
}
