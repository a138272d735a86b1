package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsStubTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WithStub = true

	ApplyDefaults(cfg)

	assert.Equal(t, "http://127.0.0.1:3001", cfg.BaseURL)
	assert.Equal(t, cfg.BaseURL, cfg.APIBaseURL)
}

func TestApplyDefaultsAPIBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://rbp.example.com"

	ApplyDefaults(cfg)

	assert.Equal(t, "https://rbp.example.com", cfg.APIBaseURL)

	cfg = DefaultConfig()
	cfg.BaseURL = "https://rbp.example.com"
	cfg.APIBaseURL = "https://api.example.com"

	ApplyDefaults(cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
}

func TestApplyDefaultsActionTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActionTimeout = 0

	ApplyDefaults(cfg)

	assert.Equal(t, 20*time.Second, cfg.ActionTimeout)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:8080"
	cfg.Username = "admin"
	cfg.Password = "password"
	assert.NoError(t, cfg.Validate())

	noTarget := *cfg
	noTarget.BaseURL = ""
	assert.Error(t, noTarget.Validate())

	noCreds := *cfg
	noCreds.Password = ""
	assert.Error(t, noCreds.Validate())
}
