package main

import (
	"fmt"
	"log"
	"os"

	"github.com/neonstore/neonstore-backend/config"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/db"
	"github.com/neonstore/neonstore-backend/internal/importer"
)

// Bulk-imports a catalog workbook into the products table. Used for
// onboarding large assortments that would be tedious through the admin API.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, summary, err := importer.ReadProducts(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", summary.TotalRows)
	fmt.Printf("  Valid products: %d\n", summary.Valid)
	fmt.Printf("  Skipped rows: %d\n", summary.Skipped)
	fmt.Printf("  Duplicate rows: %d\n", summary.Duplicates)

	if len(products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}
