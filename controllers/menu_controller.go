package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/pkg/resp"
	"lattelane/services"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{Service: s}
}

// GET /menu
func (ctl *MenuController) List(c *gin.Context) {
	cats, err := ctl.Service.ListCategories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": cats})
}

// GET /menu/items/:id
func (ctl *MenuController) ItemDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	item, err := ctl.Service.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

type menuItemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"` // cents
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Available   *bool  `json:"available"`
}

// POST /admin/menu/items
func (ctl *MenuController) CreateItem(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Available:   req.Available == nil || *req.Available,
	}
	if err := ctl.Service.CreateItem(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /admin/menu/items/:id
func (ctl *MenuController) UpdateItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	item, err := ctl.Service.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.CategoryID = req.CategoryID
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := ctl.Service.UpdateItem(item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /admin/menu/items/:id
func (ctl *MenuController) DeleteItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Service.DeleteItem(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// POST /admin/menu/categories
func (ctl *MenuController) CreateCategory(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		SortOrder int    `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := entity.MenuCategory{Name: req.Name, SortOrder: req.SortOrder}
	if err := ctl.Service.CreateCategory(&cat); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, cat)
}
