package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/pkg/logger"
)

// Column layout of a catalog workbook. The first row is a header and is
// skipped.
const (
	colName = iota
	colTagline
	colDescription
	colPrice
	colOriginalPrice
	colImageURL
	colCategory
	colFeatures
	colColors
	colStockQuantity
	colRating
	colReviewsCount

	columnCount = 12
)

// listSeparator splits multi-value cells (features, colors).
const listSeparator = "|"

// Summary reports what a parse pass did with the workbook rows.
type Summary struct {
	TotalRows  int
	Valid      int
	Skipped    int
	Duplicates int
}

// ReadProducts parses a catalog workbook into product rows. Rows missing a
// name, category or a positive price are skipped rather than failing the
// whole import; duplicates within the file (same name and category) keep
// the first occurrence.
func ReadProducts(filePath string) ([]model.Product, *Summary, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	logger.Info("Reading catalog workbook", map[string]interface{}{
		"sheet": sheetName,
		"rows":  len(rows) - 1,
	})

	var products []model.Product
	seen := make(map[string]bool)
	summary := &Summary{TotalRows: len(rows) - 1}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		product, ok := parseRow(row)
		if !ok {
			summary.Skipped++
			continue
		}

		key := strings.ToLower(product.Name) + "|" + strings.ToLower(product.Category)
		if seen[key] {
			summary.Duplicates++
			summary.Skipped++
			continue
		}
		seen[key] = true

		products = append(products, *product)
		summary.Valid++
	}

	logger.Info("Catalog workbook parsed", map[string]interface{}{
		"valid":      summary.Valid,
		"skipped":    summary.Skipped,
		"duplicates": summary.Duplicates,
	})

	return products, summary, nil
}

func parseRow(row []string) (*model.Product, bool) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	name := cell(colName)
	category := cell(colCategory)
	if name == "" || category == "" {
		return nil, false
	}

	price, err := strconv.ParseFloat(cell(colPrice), 64)
	if err != nil || price <= 0 {
		return nil, false
	}

	// Crossed-out price only makes sense when it exceeds the sale price.
	var originalPrice *float64
	if raw := cell(colOriginalPrice); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err == nil && parsed > price {
			originalPrice = &parsed
		}
	}

	stockQuantity, err := strconv.Atoi(cell(colStockQuantity))
	if err != nil || stockQuantity < 0 {
		stockQuantity = 0
	}

	rating, err := strconv.ParseFloat(cell(colRating), 64)
	if err != nil || rating < 0 || rating > 5 {
		rating = 0
	}

	reviewsCount, err := strconv.Atoi(cell(colReviewsCount))
	if err != nil || reviewsCount < 0 {
		reviewsCount = 0
	}

	return &model.Product{
		Name:          name,
		Tagline:       cell(colTagline),
		Description:   cell(colDescription),
		Price:         price,
		OriginalPrice: originalPrice,
		ImageURL:      cell(colImageURL),
		Category:      category,
		Features:      splitList(cell(colFeatures)),
		Colors:        splitList(cell(colColors)),
		InStock:       stockQuantity > 0,
		StockQuantity: stockQuantity,
		Rating:        rating,
		ReviewsCount:  reviewsCount,
	}, true
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, listSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
