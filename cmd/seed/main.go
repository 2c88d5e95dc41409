package main

import (
	"log"
	"os"

	"ebook-studio-be/internal/model"
	"ebook-studio-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	currency := os.Getenv("BILLING_CURRENCY")
	if currency == "" {
		currency = "USD"
	}

	color.Cyan("Seeding feature catalog...")
	seedFeatures(db, currency)

	color.Cyan("\nSeeding plans...")
	seedPlans(db, currency)

	color.Green("\nSeeding completed!")
}

func seedFeatures(db *gorm.DB, currency string) {
	features := []model.Feature{
		{Key: "ai_outline", Name: "AI Outline Builder", Description: "Turn a one-line idea into a chapter outline", Rate: decimal.RequireFromString("4.99"), SortOrder: 1},
		{Key: "ai_cover", Name: "AI Cover Designer", Description: "Generate cover art from your book's synopsis", Rate: decimal.RequireFromString("9.99"), SortOrder: 2},
		{Key: "grammar_pass", Name: "Grammar Pass", Description: "Line-level grammar and style corrections", Rate: decimal.RequireFromString("5.99"), SortOrder: 3},
		{Key: "translation", Name: "Translation", Description: "Translate finished manuscripts into other languages", Rate: decimal.RequireFromString("14.99"), SortOrder: 4},
		{Key: "audiobook", Name: "Audiobook Narration", Description: "Narrate chapters with a synthetic voice", Rate: decimal.RequireFromString("19.99"), SortOrder: 5},
		{Key: "epub_export", Name: "EPUB Export", Description: "Export to EPUB for e-readers", Rate: decimal.RequireFromString("2.99"), SortOrder: 6},
		{Key: "isbn", Name: "ISBN Registration", Description: "Register an ISBN for a published book", Rate: decimal.RequireFromString("24.99"), SortOrder: 7},
	}

	for _, f := range features {
		var existing model.Feature
		if err := db.Where("key = ?", f.Key).First(&existing).Error; err == nil {
			color.Yellow("Feature '%s' already exists, skipping...", f.Key)
			continue
		}

		f.Currency = currency
		f.IsActive = true
		if err := db.Create(&f).Error; err != nil {
			color.Red("Error creating feature '%s': %v", f.Key, err)
		} else {
			color.Green("Created feature: %s (%s) %s", f.Name, f.Key, f.Rate.StringFixed(2))
		}
	}
}

func seedPlans(db *gorm.DB, currency string) {
	tax := decimal.RequireFromString("0.10")
	plans := []model.Plan{
		{Name: "Free", Slug: "free", Description: "Try the studio with one e-book", Rate: decimal.Zero, DurationDays: 14, MaxEbooks: 1, TierRank: 0, IsTrial: true, SortOrder: 0},
		{Name: "Basic", Slug: "basic", Description: "For a first book", Rate: decimal.RequireFromString("9.99"), TaxRate: tax, DurationDays: 30, MaxEbooks: 3, TierRank: 1, SortOrder: 1},
		{Name: "Pro", Slug: "pro", Description: "For regular authors", Rate: decimal.RequireFromString("29.99"), TaxRate: tax, DurationDays: 30, MaxEbooks: 10, TierRank: 2, SortOrder: 2},
		{Name: "Premium", Slug: "premium", Description: "Everything, without limits", Rate: decimal.RequireFromString("99.99"), TaxRate: tax, DurationDays: 30, MaxEbooks: -1, TierRank: 3, SortOrder: 3},
	}

	for _, p := range plans {
		var existing model.Plan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		p.Currency = currency
		p.IsActive = true
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s (rank %d) %s", p.Name, p.TierRank, p.Rate.StringFixed(2))
		}
	}
}
