package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"lattelane/pkg/resp"
	"lattelane/services"
	"lattelane/utils"
)

type CartController struct {
	Service *services.CartService
}

func NewCartController(s *services.CartService) *CartController {
	return &CartController{Service: s}
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	cart, err := ctl.Service.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/items
func (ctl *CartController) AddItem(c *gin.Context) {
	var req services.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := ctl.Service.AddItem(utils.CurrentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound), errors.Is(err, services.ErrMenuItemNotForSale):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, cart)
}

// PATCH /cart/items/:id
func (ctl *CartController) UpdateItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("id"))
	var req struct {
		Qty int `json:"qty" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := ctl.Service.UpdateQty(utils.CurrentUserID(c), uint(itemID), req.Qty)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart/items/:id
func (ctl *CartController) RemoveItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("id"))
	cart, err := ctl.Service.RemoveItem(utils.CurrentUserID(c), uint(itemID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Service.Clear(utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
