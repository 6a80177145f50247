package main

import (
	"context"
	"errors"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shopfront/internal/config"
	"shopfront/internal/domain"
	"shopfront/internal/repository"
	"shopfront/internal/repository/sqlite"
)

const categoryCount = 100

// Seeds the category catalog with generated names. Safe to re-run: existing
// names are skipped, new ones top the table back up to categoryCount.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		logger.Fatalf("database path is required")
	}

	ctx := context.Background()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewCategoryRepository(db)
	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("init category repository: %v", err)
	}

	inserted := 0
	for _, name := range generateCategoryNames(categoryCount) {
		err := repo.Create(ctx, &domain.Category{ID: uuid.NewString(), Name: name})
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, repository.ErrAlreadyExists):
			// already seeded on a previous run
		default:
			logger.Fatalf("insert category %q: %v", name, err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Fatalf("count categories: %v", err)
	}
	logger.Infof("seeded %d new categories (%d total)", inserted, total)
}

// generateCategoryNames produces count unique, title-cased names drawn from
// a few fake-data domains.
func generateCategoryNames(count int) []string {
	generators := []func() string{
		gofakeit.ProductCategory,
		gofakeit.BuzzWord,
		gofakeit.HackerNoun,
		gofakeit.Color,
		gofakeit.CarType,
		gofakeit.Animal,
		gofakeit.Fruit,
		gofakeit.Vegetable,
	}

	seen := make(map[string]struct{}, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := titleCase(generators[gofakeit.Number(0, len(generators)-1)]())
		if len(name) <= 2 {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
