package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lattelane/pkg/resp"
	"lattelane/services"
	"lattelane/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// GET /orders
func (ctl *OrderController) ListForMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Service.ListForUser(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (ctl *OrderController) Detail(c *gin.Context) {
	detail, err := ctl.Service.DetailForUser(utils.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			resp.NotFound(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// GET /orders/:id/retry — reconstructed cart for a draft order
func (ctl *OrderController) RetryCart(c *gin.Context) {
	cart, err := ctl.Service.LoadRetryCart(utils.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrOrderNotDraft):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, cart)
}
