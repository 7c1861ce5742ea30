// cmd/packscanctl/context.go
package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/database"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/router"
	"github.com/packscan/packscan-backend/internal/services"
)

type commandContext struct {
	asFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
}

func newCommandContext(asFlag *string) *commandContext {
	return &commandContext{asFlag: asFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureDB() (*gorm.DB, error) {
	c.dbOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.dbErr = err
			return
		}
		c.db, c.dbErr = database.Initialize(cfg.Database)
	})
	return c.db, c.dbErr
}

func (c *commandContext) close() {
	if c.db != nil {
		database.Close(c.db)
	}
}

func (c *commandContext) services() (*router.Services, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := c.ensureDB()
	if err != nil {
		return nil, err
	}
	return router.NewServices(db, cfg, nil)
}

// admin resolves the administrator the command acts on behalf of.
func (c *commandContext) admin() (services.Actor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return services.Actor{}, err
	}
	db, err := c.ensureDB()
	if err != nil {
		return services.Actor{}, err
	}

	email := cfg.Admin.Email
	if c.asFlag != nil && strings.TrimSpace(*c.asFlag) != "" {
		email = *c.asFlag
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return services.Actor{}, errors.New("no administrator given; pass --as or set ADMIN_EMAIL")
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.Actor{}, fmt.Errorf("user %s not found", email)
		}
		return services.Actor{}, fmt.Errorf("look up %s: %w", email, err)
	}
	if !user.Role.IsAdmin() {
		return services.Actor{}, fmt.Errorf("user %s is not an administrator", email)
	}

	return services.Actor{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
