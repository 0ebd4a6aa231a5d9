package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/bistro-reserve/config"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
	"gorm.io/gorm"
)

// Seeder mengisi database dengan data awal: akun admin, kategori menu,
// item menu, denah meja, dan settings default. Aman dijalankan ulang.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Booking{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RestaurantSettings{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := seedAdmin(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed seeding admin: %v", err)
	}
	if err := seedMenu(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed seeding menu: %v", err)
	}
	if err := seedTables(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed seeding tables: %v", err)
	}
	if err := seedSettings(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed seeding settings: %v", err)
	}

	utils.InfoLogger.Println("Database seeded successfully")
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@bistroreserve.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		utils.InfoLogger.Printf("Admin %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}

type seedItem struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

func seedMenu(db *gorm.DB) error {
	var count int64
	db.Model(&models.MenuCategory{}).Count(&count)
	if count > 0 {
		utils.InfoLogger.Println("Menu already seeded, skipping")
		return nil
	}

	categories := []struct {
		Name        string
		Description string
		SortOrder   int
		Items       []seedItem
	}{
		{
			Name:        "Appetizers",
			Description: "Start your meal with our delicious appetizers",
			SortOrder:   1,
			Items: []seedItem{
				{"Crispy Calamari", "Fresh squid rings served with marinara sauce and lemon", 12.99, ""},
				{"Buffalo Wings", "Spicy chicken wings served with blue cheese dip and celery", 14.99, ""},
				{"Spinach Artichoke Dip", "Creamy dip served hot with tortilla chips", 10.99, ""},
				{"Mozzarella Sticks", "Golden fried mozzarella with marinara sauce", 9.99, ""},
			},
		},
		{
			Name:        "Main Courses",
			Description: "Hearty and satisfying main dishes",
			SortOrder:   2,
			Items: []seedItem{
				{"Grilled Salmon", "Atlantic salmon with lemon herb butter, served with rice and vegetables", 24.99, ""},
				{"Ribeye Steak", "12oz ribeye steak cooked to perfection with garlic mashed potatoes", 32.99, ""},
				{"Chicken Parmesan", "Breaded chicken breast with marinara sauce and melted mozzarella", 19.99, ""},
				{"Vegetarian Pasta", "Penne pasta with seasonal vegetables in a creamy alfredo sauce", 16.99, ""},
				{"Fish and Chips", "Beer-battered cod with crispy fries and tartar sauce", 18.99, ""},
				{"BBQ Ribs", "Slow-cooked baby back ribs with our signature BBQ sauce", 26.99, ""},
			},
		},
		{
			Name:        "Desserts",
			Description: "Sweet treats to end your meal perfectly",
			SortOrder:   3,
			Items: []seedItem{
				{"Chocolate Lava Cake", "Warm chocolate cake with molten center, served with vanilla ice cream", 8.99, ""},
				{"Tiramisu", "Classic Italian dessert with coffee-soaked ladyfingers and mascarpone", 7.99, ""},
				{"New York Cheesecake", "Rich and creamy cheesecake with berry compote", 6.99, ""},
				{"Apple Pie", "Homemade apple pie with cinnamon and vanilla ice cream", 6.99, ""},
			},
		},
		{
			Name:        "Beverages",
			Description: "Refreshing drinks to complement your meal",
			SortOrder:   4,
			Items: []seedItem{
				{"Fresh Orange Juice", "Freshly squeezed orange juice", 4.99, ""},
				{"Iced Tea", "Refreshing iced tea with lemon", 3.99, ""},
				{"Coffee", "Freshly brewed coffee", 2.99, ""},
				{"Soft Drinks", "Coca-Cola, Pepsi, Sprite, or other soft drinks", 2.99, ""},
				{"Sparkling Water", "Premium sparkling water with lime", 3.99, ""},
			},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range categories {
			desc := c.Description
			category := models.MenuCategory{
				Name:        c.Name,
				Description: &desc,
				SortOrder:   c.SortOrder,
				IsActive:    true,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			for _, it := range c.Items {
				itemDesc := it.Description
				item := models.MenuItem{
					CategoryID:  category.ID,
					Name:        it.Name,
					Description: &itemDesc,
					Price:       it.Price,
					IsAvailable: true,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func seedTables(db *gorm.DB) error {
	var count int64
	db.Model(&models.Table{}).Count(&count)
	if count > 0 {
		utils.InfoLogger.Println("Tables already seeded, skipping")
		return nil
	}

	type seedTable struct {
		Number      string
		Capacity    int
		X, Y        int
		W, H        int
		Description string
	}

	tables := []seedTable{
		// Meja sisi jendela (2 orang)
		{"T1", 2, 50, 50, 80, 80, "Window table for 2"},
		{"T2", 2, 200, 50, 80, 80, "Window table for 2"},
		{"T3", 2, 350, 50, 80, 80, "Window table for 2"},
		{"T4", 2, 500, 50, 80, 80, "Window table for 2"},
		// Area tengah (4 orang)
		{"T5", 4, 100, 200, 100, 100, "Center table for 4"},
		{"T6", 4, 300, 200, 100, 100, "Center table for 4"},
		{"T7", 4, 500, 200, 100, 100, "Center table for 4"},
		// Meja besar (6 orang)
		{"T8", 6, 150, 350, 120, 100, "Large table for 6"},
		{"T9", 6, 400, 350, 120, 100, "Large table for 6"},
		// Booth pojok (4 orang)
		{"B1", 4, 50, 500, 150, 80, "Corner booth for 4"},
		{"B2", 4, 450, 500, 150, 80, "Corner booth for 4"},
		// Bar (2 orang)
		{"BR1", 2, 700, 100, 60, 120, "Bar seating"},
		{"BR2", 2, 700, 250, 60, 120, "Bar seating"},
		{"BR3", 2, 700, 400, 60, 120, "Bar seating"},
		// VIP (8 orang)
		{"VIP1", 8, 250, 500, 150, 120, "VIP table for 8"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			desc := t.Description
			table := models.Table{
				Number:      t.Number,
				Capacity:    t.Capacity,
				IsActive:    true,
				X:           t.X,
				Y:           t.Y,
				Width:       t.W,
				Height:      t.H,
				Description: &desc,
			}
			if err := tx.Create(&table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seedSettings(db *gorm.DB) error {
	var count int64
	db.Model(&models.RestaurantSettings{}).Count(&count)
	if count > 0 {
		return nil
	}
	settings := models.RestaurantSettings{
		RestaurantName:        "Bistro Reserve",
		OpeningTime:           "11:00",
		ClosingTime:           "22:00",
		BookingSlotDuration:   90,
		MaxAdvanceBookingDays: 30,
		IsOnline:              true,
	}
	return db.Create(&settings).Error
}
