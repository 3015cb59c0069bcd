package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"subhub/internal/config"
	"subhub/internal/db"
	"subhub/internal/model"
	"subhub/internal/repository"
)

type seedPlan struct {
	name     string
	features string
}

type seedService struct {
	name  string
	plans []seedPlan
}

var demoCatalog = []seedService{
	{
		name: "Cloud Storage",
		plans: []seedPlan{
			{name: "Basic", features: `{"storage":"50GB","devices":2,"support":"email"}`},
			{name: "Premium", features: `{"storage":"2TB","devices":10,"support":"priority"}`},
		},
	},
	{
		name: "Video Streaming",
		plans: []seedPlan{
			{name: "Standard", features: `{"quality":"1080p","screens":2}`},
			{name: "Family", features: `{"quality":"4K","screens":5,"profiles":6}`},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Service{},
		&model.Plan{},
		&model.Enrollment{},
		&model.Archive{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	store := repository.NewStore(gormDB)
	ctx := context.Background()

	if err := seedAdmin(ctx, store); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, err := seedCatalog(ctx, store)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed complete: %d services created", created)
}

// seedAdmin provisions the admin account. Self-service registration only
// creates customers, so this is the one place an admin comes from.
func seedAdmin(ctx context.Context, store repository.Store) error {
	email := getEnv("ADMIN_EMAIL", "admin@subhub.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	if _, err := store.Users().FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin %s", email)
	return nil
}

func seedCatalog(ctx context.Context, store repository.Store) (int, error) {
	created := 0
	for _, svc := range demoCatalog {
		if _, err := store.Catalog().FindServiceByName(ctx, svc.name); err == nil {
			log.Printf("Service %q already exists, skipping", svc.name)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		svc := svc
		err := store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
			service := &model.Service{ServiceName: svc.name}
			if err := tx.Catalog().CreateService(ctx, service); err != nil {
				return err
			}
			plans := make([]model.Plan, 0, len(svc.plans))
			for _, p := range svc.plans {
				plans = append(plans, model.Plan{
					ServiceID: service.ID,
					PlanName:  p.name,
					Features:  datatypes.JSON(p.features),
				})
			}
			return tx.Catalog().CreatePlans(ctx, plans)
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
