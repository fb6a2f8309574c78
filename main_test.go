package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orderdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNewApp_HealthAndRouting(t *testing.T) {
	loadConfig()

	db, err := gorm.Open(sqlite.Open("file:mainapp?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Client{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	app := NewApp(db, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Protected routes are wired and guarded.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Public product listing is reachable without a token.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
