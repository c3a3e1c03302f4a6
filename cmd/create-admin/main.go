package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/apraveen001/Travel-Agency-System/internal/config"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/apraveen001/Travel-Agency-System/pkg/jwt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Creates the first admin user, which cannot be done through the API
func main() {
	var (
		email    = flag.String("email", "", "admin email address")
		password = flag.String("password", "", "initial password (min 8 characters)")
		name     = flag.String("name", "", "full name")
		role     = flag.String("role", string(models.AdminRoleAdmin), "admin, manager or agent")
	)
	flag.Parse()

	if *email == "" || *name == "" || len(*password) < 8 {
		flag.Usage()
		os.Exit(2)
	}
	if !models.AdminRole(*role).IsValid() {
		log.Fatalf("invalid role %q", *role)
	}

	// Only the database and security sections are needed; JWT secrets are not
	_ = godotenv.Load()
	var cfg struct {
		Database config.DatabaseConfig
		Security config.SecurityConfig
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	logger := logrus.New()
	authService := services.NewAdminAuthService(
		database.NewAdminUserRepository(db),
		database.NewAdminRefreshTokenRepository(db),
		jwt.NewService("", "", 0, 0),
		services.NewRateLimitService(db, services.RateLimitConfigFrom(cfg.Security)),
		services.NewAuditService(db, cfg.Security.EnableAuditLog),
		cfg.Security.BcryptCost,
		logger,
	)

	admin, err := authService.CreateAdmin(context.Background(), &models.AdminCreateRequest{
		Email:    *email,
		Password: *password,
		FullName: *name,
		Role:     *role,
	}, nil)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Created %s %s (%s)\n", admin.Role, admin.Email, admin.ID)
}
