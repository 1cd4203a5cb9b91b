// Package app wires configuration, storage, messaging and services into a
// runnable HTTP server.
package app

import (
	"errors"
	"fmt"

	"gudang/internal/config"
	"gudang/internal/database"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/pkg/rabbitmq"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds the long-lived dependencies of the service.
type Container struct {
	Config *config.Config
	Log    *zap.Logger

	// DB is nil for the memory driver.
	DB *gorm.DB
	// MQ is nil when RABBITMQ_URL is empty.
	MQ *rabbitmq.Client

	Credentials *services.CredentialStore
	Tokens      *services.TokenService
	Auth        *services.AuthService
	Products    *services.ProductService
}

// NewContainer opens the configured storage and messaging and builds the
// services on top of them.
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	var (
		users       repositories.UserRepository
		products    repositories.ProductRepository
		revocations repositories.RevocationRepository
	)
	if cfg.DatabaseDriver == database.DriverMemory {
		log.Warn("using in-memory storage; data is lost on exit")
		users = repositories.NewMockUserRepository()
		products = repositories.NewMockProductRepository()
		revocations = repositories.NewMockRevocationRepository()
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, err
		}
		c.DB = db
		users = repositories.NewGORMUserRepository(db)
		products = repositories.NewGORMProductRepository(db)
		revocations = repositories.NewGORMRevocationRepository(db)
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		}, log)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		c.MQ = mq
		events = mq
	}

	c.Credentials = services.NewCredentialStore(users, cfg.BcryptCost)
	c.Tokens = services.NewTokenService(revocations, c.Credentials, cfg.JWTSecret, cfg.TokenTTL)
	c.Auth = services.NewAuthService(c.Credentials, c.Tokens, events, log)
	c.Products = services.NewProductService(products, events, log)
	return c, nil
}

// Migrate brings the schema up to date. It is a no-op for the memory driver.
func (c *Container) Migrate() error {
	if c.DB == nil {
		return nil
	}
	return database.Migrate(c.DB)
}

// Close releases the database pool and the AMQP connection.
func (c *Container) Close() error {
	var errs []error
	if c.MQ != nil {
		errs = append(errs, c.MQ.Close())
	}
	if c.DB != nil {
		errs = append(errs, database.Close(c.DB))
	}
	return errors.Join(errs...)
}
