package app

import (
	"context"
	"errors"
	"os"
	"time"

	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@company.com"
	defaultAdminPassword = "admin123"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := openDatabaseFromEnv()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&leave.LeaveRequest{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}
	logger.Info("database schema migrated")

	if err := seedDefaultAdmin(context.Background(), gormDB, logger); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient)
}

// seedDefaultAdmin makes sure at least one admin login exists so a fresh
// deployment is usable without touching the database by hand.
func seedDefaultAdmin(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	email := os.Getenv("DEFAULT_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	repo := employee.NewRepository(db)

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &employee.Employee{
		ID:             uuid.New(),
		FullName:       "Default Admin",
		Email:          email,
		Department:     "Administration",
		JoiningDate:    time.Now().UTC().Truncate(24 * time.Hour),
		LeaveBalance:   employee.DefaultLeaveBalance,
		IsActive:       true,
		IsAdmin:        true,
		HashedPassword: string(hash),
	}

	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("default admin seeded", zap.String("email", email))
	return nil
}
