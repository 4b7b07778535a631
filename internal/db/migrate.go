package db

import (
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Address{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedProducts(); err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func floatPtr(v float64) *float64 { return &v }

// seedProducts loads the launch catalog. Seeding is idempotent: once any
// product row exists the catalog is left alone so admin edits survive
// restarts.
func seedProducts() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding product catalog...")

	products := []model.Product{
		{
			Name:          "Neon Pulse Headphones",
			Tagline:       "Immersive Sound. Zero Compromise.",
			Description:   "Experience audio in its purest form with adaptive noise cancellation, 48-hour battery life, and spatial audio that puts you in the center of every beat.",
			Price:         299,
			OriginalPrice: floatPtr(399),
			ImageURL:      "/assets/product-headphones.jpg",
			Category:      "Audio",
			Features:      []string{"Active Noise Cancellation", "48hr Battery", "Spatial Audio", "Hi-Res Certified", "Bluetooth 5.3"},
			Colors:        []string{"Midnight Black", "Neon Blue", "Cyber Pink"},
			InStock:       true,
			StockQuantity: 120,
			Rating:        4.9,
			ReviewsCount:  2847,
		},
		{
			Name:          "Quantum Watch Pro",
			Tagline:       "Time Redefined.",
			Description:   "The most advanced smartwatch with holographic display, health monitoring suite, and seamless ecosystem integration. Your life, on your wrist.",
			Price:         549,
			OriginalPrice: floatPtr(699),
			ImageURL:      "/assets/product-watch.jpg",
			Category:      "Wearables",
			Features:      []string{"Holographic Display", "14-Day Battery", "Health Suite", "GPS + LTE", "Water Resistant 100m"},
			Colors:        []string{"Titanium", "Obsidian", "Aurora"},
			InStock:       true,
			StockQuantity: 80,
			Rating:        4.8,
			ReviewsCount:  1923,
		},
		{
			Name:          "Phantom Mech Keyboard",
			Tagline:       "Type at the Speed of Light.",
			Description:   "Ultra-responsive optical switches, per-key RGB with 16M colors, aircraft-grade aluminum body. Built for those who demand perfection.",
			Price:         199,
			OriginalPrice: floatPtr(249),
			ImageURL:      "/assets/product-keyboard.jpg",
			Category:      "Peripherals",
			Features:      []string{"Optical Switches", "Per-Key RGB", "USB-C", "Aluminum Body", "N-Key Rollover"},
			Colors:        []string{"Shadow", "Prism", "Stealth"},
			InStock:       true,
			StockQuantity: 200,
			Rating:        4.7,
			ReviewsCount:  3215,
		},
		{
			Name:          "Aura Earbuds X",
			Tagline:       "Sound Without Boundaries.",
			Description:   "Crystal-clear audio in an ultra-compact design. Adaptive EQ, seamless switching between devices, and a charging case that fits anywhere.",
			Price:         179,
			OriginalPrice: floatPtr(229),
			ImageURL:      "/assets/product-earbuds.jpg",
			Category:      "Audio",
			Features:      []string{"Adaptive EQ", "Seamless Switching", "Wireless Charging", "IPX5 Rated", "Touch Controls"},
			Colors:        []string{"Pearl", "Neon Pink", "Electric Blue"},
			InStock:       true,
			StockQuantity: 150,
			Rating:        4.8,
			ReviewsCount:  4102,
		},
	}

	totalInserted := 0
	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"name": product.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Product catalog seeded successfully", map[string]interface{}{
		"total_records": totalInserted,
	})
	return nil
}
