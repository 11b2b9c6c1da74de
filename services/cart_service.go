package services

import (
	"errors"

	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/repository"
)

type CartService struct {
	DB       *gorm.DB
	Repo     *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, repo *repository.CartRepository, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{DB: db, Repo: repo, MenuRepo: menuRepo}
}

type AddItemReq struct {
	MenuItemID    *uint  `json:"menuItemId"`
	Qty           int    `json:"qty" binding:"required,min=1"`
	Note          string `json:"note"`
	Customization string `json:"customization"`
	// Price is only honored for customized items (nil MenuItemID);
	// regular items always snapshot the live menu price.
	Price int64 `json:"price"`
}

func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	return s.Repo.GetCartWithItems(userID)
}

// AddItem snapshots the unit price at add time so a later menu price
// change never repriced lines already in the cart.
func (s *CartService) AddItem(userID uint, req *AddItemReq) (*entity.Cart, error) {
	var unit int64
	if req.MenuItemID != nil {
		m, err := s.MenuRepo.ItemBasics(*req.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMenuItemNotFound
			}
			return nil, err
		}
		if !m.Available {
			return nil, ErrMenuItemNotForSale
		}
		unit = m.Price
	} else {
		if req.Price <= 0 {
			return nil, ErrMenuItemNotFound
		}
		unit = req.Price
	}

	cart, err := s.Repo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	row := &entity.CartItem{
		MenuItemID:    req.MenuItemID,
		Qty:           req.Qty,
		UnitPrice:     unit,
		Total:         unit * int64(req.Qty),
		Note:          req.Note,
		Customization: req.Customization,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpsertItem(tx, cart.ID, row)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) UpdateQty(userID, itemID uint, qty int) (*entity.Cart, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateQty(tx, userID, itemID, qty)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) RemoveItem(userID, itemID uint) (*entity.Cart, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.RemoveItem(tx, userID, itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.ClearCart(tx, userID)
	})
}
