package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lattelane/pkg/resp"
	"lattelane/pkg/yoco"
	"lattelane/services"
	"lattelane/utils"
)

type CheckoutController struct {
	Service *services.CheckoutService
}

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Service: s}
}

// POST /checkout
func (ctl *CheckoutController) Create(c *gin.Context) {
	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := ctl.Service.Checkout(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		ctl.respondError(c, res, err)
		return
	}
	resp.Created(c, res)
}

// POST /orders/:id/retry — new payment session for an existing draft
func (ctl *CheckoutController) Retry(c *gin.Context) {
	res, err := ctl.Service.RetryCheckout(c.Request.Context(), utils.CurrentUserID(c), c.Param("id"))
	if err != nil {
		ctl.respondError(c, res, err)
		return
	}
	resp.OK(c, res)
}

// respondError maps service errors; a gateway failure still reports
// the draft order so the client can offer a retry.
func (ctl *CheckoutController) respondError(c *gin.Context, res *services.CheckoutRes, err error) {
	var (
		apiErr *yoco.APIError
		trErr  *yoco.TransportError
	)
	switch {
	case errors.Is(err, services.ErrCartEmpty), errors.Is(err, services.ErrOrderNotDraft):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		resp.NotFound(c, err.Error())
	case errors.As(err, &apiErr), errors.As(err, &trErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":    false,
			"error": "payment gateway error",
			"data":  res,
		})
	default:
		resp.ServerError(c, err)
	}
}
