// Package main provides a CLI tool for seeding the database with an
// administrator account and optional demo menu data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"dastarkhan/internal/core/apperror"
	appctx "dastarkhan/internal/core/context"
	"dastarkhan/internal/domain/account"
	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/domain/catalogs/product"
	"dastarkhan/internal/domain/singleton"
	"dastarkhan/internal/domain/venue/address"
	"dastarkhan/internal/infrastructure/files"
	"dastarkhan/internal/infrastructure/storage/postgres"
	"dastarkhan/internal/infrastructure/storage/postgres/account_repo"
	"dastarkhan/internal/infrastructure/storage/postgres/catalog_repo"
	"dastarkhan/internal/infrastructure/storage/postgres/venue_repo"
	"dastarkhan/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
		Service:     "dastarkhan-seed",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)

	if err := seedAdmin(ctx, txm, log); err != nil {
		log.Fatalw("failed to seed administrator", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txm, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// seedAdmin creates the administrator or promotes an existing account with
// the same phone number.
func seedAdmin(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	phone := getEnv("ADMIN_PHONE", "+998900000000")
	password := getEnv("ADMIN_PASSWORD", "Admin123!")
	repo := account_repo.NewAccountRepo(txm)

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := repo.GetByPhone(ctx, phone)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("check admin exists: %w", err)
		}
		if existing != nil {
			existing.Status = appctx.StatusAdministrator
			existing.IsStaff, existing.IsSuperuser, existing.IsActive = true, true, true
			existing.Touch()
			log.Infow("administrator already exists, promoting", "phone", phone, "id", existing.ID)
			return repo.Update(ctx, existing)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		a := account.NewAccount(phone, getEnv("ADMIN_FIRST_NAME", "Admin"))
		a.PasswordHash = string(hash)
		a.Status = appctx.StatusAdministrator
		a.IsStaff, a.IsSuperuser = true, true
		if err := a.Validate(ctx); err != nil {
			return err
		}
		if err := repo.Create(ctx, a); err != nil {
			return fmt.Errorf("insert administrator: %w", err)
		}

		log.Infow("administrator created", "phone", phone, "id", a.ID)
		return nil
	})
}

type demoProduct struct {
	name        string
	description string
	price       string
	discount    string
	ingredients []string
}

func seedDemoData(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	log.Info("seeding demo data...")

	store, err := files.NewLocalStore(getEnv("MEDIA_ROOT", "./media"), "")
	if err != nil {
		return err
	}

	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	categories := category.NewService(categoryRepo, txm, store)
	products := product.NewService(
		catalog_repo.NewProductRepo(txm),
		catalog_repo.NewIngredientRepo(txm),
		categoryRepo,
		txm,
		store,
	)
	addresses := address.NewService(venue_repo.NewAddressRepo(txm), txm, singleton.NewEnforcer(txm, txm))

	menu := []struct {
		category string
		products []demoProduct
	}{
		{"main dishes", []demoProduct{
			{"Plov", "Rice pilaf with beef and yellow carrot", "45000", "", []string{"Rice", "Beef", "Carrot", "Onion"}},
			{"Beshbarmak", "Hand-cut noodles with boiled beef", "52000", "10", []string{"Noodles", "Beef", "Onion"}},
		}},
		{"salads", []demoProduct{
			{"Achichuk", "Tomato and onion salad", "15000", "", []string{"Tomato", "Onion"}},
		}},
	}

	fresh := false
	for _, group := range menu {
		c, err := categories.Create(ctx, category.CreateInput{
			Name:  group.category,
			Image: "category_images/placeholder.png",
		})
		if apperror.IsConflict(err) {
			log.Infow("category already exists, skipping", "name", group.category)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed category %q: %w", group.category, err)
		}
		fresh = true

		for _, p := range group.products {
			in := product.CreateInput{
				CategoryID:    c.ID,
				Name:          p.name,
				Description:   p.description,
				OriginalPrice: decimal.RequireFromString(p.price),
				Ingredients:   p.ingredients,
			}
			if p.discount != "" {
				d := decimal.RequireFromString(p.discount)
				in.DiscountPercent = &d
			}
			if _, err := products.Create(ctx, in); err != nil && !apperror.IsConflict(err) {
				return fmt.Errorf("seed product %q: %w", p.name, err)
			}
		}
	}

	if !fresh {
		log.Info("demo menu already present")
		return nil
	}

	town, line, isDefault := "Nukus", "Dosnazarov street 12", true
	if _, err := addresses.Create(ctx, address.Input{TownCity: &town, AddressLine: &line, IsDefault: &isDefault}); err != nil {
		return fmt.Errorf("seed address: %w", err)
	}

	log.Info("demo data seeded")
	return nil
}
