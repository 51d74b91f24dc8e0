package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"machinity-be/internal/entity"
	"machinity-be/pkg/database"
)

// Seeds data/products.json into postgres. Existing rows are upserted by id,
// so the seeder is safe to re-run. The "—" CPU placeholder is stored as NULL.
func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	productsFile := os.Getenv("PRODUCTS_FILE")
	if productsFile == "" {
		productsFile = "data/products.json"
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Schema
	color.Cyan("Step 1: Migrating products table...")
	if err := db.AutoMigrate(&entity.Product{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 4. Read the dataset
	color.Cyan("Step 2: Reading %s...", productsFile)
	raw, err := os.ReadFile(productsFile)
	if err != nil {
		log.Fatal("Error: Failed to read products file:", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Fatal("Error: Failed to decode products file:", err)
	}

	// 5. Upsert
	color.Cyan("Step 3: Upserting %d products...", len(products))
	for i := range products {
		products[i].Normalize()
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&products[i]).Error
		if err != nil {
			color.Red("  ✗ %s: %v", products[i].Id, err)
			continue
		}
		color.Green("  ✓ %s (%s)", products[i].Id, products[i].Name)
	}

	color.Green("Done. Seeded %d products.", len(products))
}
