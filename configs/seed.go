package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/utils"
)

func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedMenu creates the starter categories and a handful of items so a
// fresh database has something to browse. The rest of the menu is
// managed through the admin API.
func SeedMenu(db *gorm.DB) error {
	categories := []entity.MenuCategory{
		{Name: "Drinks", SortOrder: 1},
		{Name: "Breakfast", SortOrder: 2},
		{Name: "Mains", SortOrder: 3},
		{Name: "Pizza", SortOrder: 4},
		{Name: "Desserts", SortOrder: 5},
	}
	ids := map[string]uint{}
	for _, c := range categories {
		var out entity.MenuCategory
		err := db.Where(entity.MenuCategory{Name: c.Name}).
			Attrs(entity.MenuCategory{SortOrder: c.SortOrder}).
			FirstOrCreate(&out).Error
		if err != nil {
			return err
		}
		ids[out.Name] = out.ID
	}

	items := []entity.MenuItem{
		{Name: "Cappuccino", Price: utils.RandsToCents(35.00), Available: true, CategoryID: ids["Drinks"]},
		{Name: "Flat White", Price: utils.RandsToCents(38.00), Available: true, CategoryID: ids["Drinks"]},
		{Name: "Breakfast Toastie", Price: utils.RandsToCents(85.00), Available: true, CategoryID: ids["Breakfast"]},
		{Name: "Margherita", Price: utils.RandsToCents(110.00), Available: true, CategoryID: ids["Pizza"]},
	}
	for _, it := range items {
		var out entity.MenuItem
		err := db.Where(entity.MenuItem{Name: it.Name, CategoryID: it.CategoryID}).
			Attrs(it).
			FirstOrCreate(&out).Error
		if err != nil {
			return err
		}
	}
	return nil
}
