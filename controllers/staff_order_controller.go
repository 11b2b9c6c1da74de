package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lattelane/entity"
	"lattelane/pkg/resp"
	"lattelane/services"
)

// StaffOrderController drives the kitchen side of the order lifecycle.
type StaffOrderController struct {
	Service *services.OrderService
}

func NewStaffOrderController(s *services.OrderService) *StaffOrderController {
	return &StaffOrderController{Service: s}
}

// GET /staff/orders
func (ctl *StaffOrderController) ListActive(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	orders, err := ctl.Service.ListActive(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// PATCH /staff/orders/:id/accept
func (ctl *StaffOrderController) Accept(c *gin.Context) {
	ctl.apply(c, ctl.Service.StartPreparing)
}

// PATCH /staff/orders/:id/ready
func (ctl *StaffOrderController) Ready(c *gin.Context) {
	ctl.apply(c, ctl.Service.MarkReady)
}

// PATCH /staff/orders/:id/complete
func (ctl *StaffOrderController) Complete(c *gin.Context) {
	ctl.apply(c, ctl.Service.Complete)
}

// PATCH /staff/orders/:id/cancel
func (ctl *StaffOrderController) Cancel(c *gin.Context) {
	ctl.apply(c, ctl.Service.Cancel)
}

func (ctl *StaffOrderController) apply(c *gin.Context, fn func(string) (*entity.Order, error)) {
	order, err := fn(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, order)
}
