package services

import (
	"lattelane/entity"
	"lattelane/repository"
)

type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{Repo: repo}
}

func (s *MenuService) ListCategories() ([]entity.MenuCategory, error) {
	return s.Repo.ListCategories()
}

func (s *MenuService) GetItem(id uint) (*entity.MenuItem, error) {
	return s.Repo.FindItem(id)
}

func (s *MenuService) CreateItem(m *entity.MenuItem) error {
	return s.Repo.CreateItem(m)
}

func (s *MenuService) UpdateItem(m *entity.MenuItem) error {
	return s.Repo.UpdateItem(m)
}

func (s *MenuService) DeleteItem(id uint) error {
	return s.Repo.DeleteItem(id)
}

func (s *MenuService) CreateCategory(c *entity.MenuCategory) error {
	return s.Repo.CreateCategory(c)
}
