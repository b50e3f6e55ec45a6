package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"authapp/internal/config"
	"authapp/internal/db"
	"authapp/internal/model"
	"authapp/internal/repository"
)

// demoPassword is the credential for every seeded account.
const demoPassword = "password123"

type seedUser struct {
	Name  string
	Email string
	Posts []string
}

var seedUsers = []seedUser{
	{Name: "Alice Example", Email: "alice@example.com", Posts: []string{"Hello world", "Second thoughts"}},
	{Name: "Bob Example", Email: "bob@example.com", Posts: []string{"Bob's first post"}},
	{Name: "Carol Example", Email: "carol@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	ctx := context.Background()

	created, updated, err := seed(ctx, userRepo, postRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
}

// seed creates or refreshes the demo users, keyed by email. Seeded accounts
// are verified so they can sign in immediately.
func seed(ctx context.Context, users repository.UserRepository, posts repository.PostRepository) (created int, updated int, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, 0, err
	}
	passwordHash := string(hashed)
	now := time.Now()

	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, err
		}

		if existing != nil && err == nil {
			existing.Name = su.Name
			existing.PasswordHash = &passwordHash
			existing.IsVerified = true
			if err := users.Update(ctx, existing); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}

		user := &model.User{
			ID:            uuid.New(),
			Name:          su.Name,
			Email:         su.Email,
			PasswordHash:  &passwordHash,
			IsVerified:    true,
			EmailVerified: &now,
		}
		if err := users.Create(ctx, user); err != nil {
			return created, updated, err
		}
		created++

		for _, title := range su.Posts {
			if err := posts.Create(ctx, &model.Post{Name: title, CreatedByID: user.ID}); err != nil {
				return created, updated, err
			}
		}
	}

	return created, updated, nil
}
