package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/http/controller"
	"github.com/memoria-viva/memorial-service/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouterRegistersDocumentedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := &controller.Controller{
		Config: &config.Config{EnvConfig: &config.EnvConfig{}},
		Infra:  &infra.Infra{},
	}

	r := SetupRouter(ctrl)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/memorial/healthz",
		"GET /api/v1/memorial/auth/session",
		"POST /api/v1/memorial/auth/logout",
		// Exact path, no trailing slash: clients must not depend on a 307
		"POST /api/v1/memorial/memorials",
		"GET /api/v1/memorial/memorials/:slug",
		"GET /api/v1/memorial/memorials/:slug/qrcode",
		"GET /api/v1/memorial/memorials/:slug/tributes",
		"POST /api/v1/memorial/memorials/:slug/tributes",
	}
	for _, want := range expected {
		require.True(t, registered[want], "missing route %s", want)
	}
	assert.False(t, registered["POST /api/v1/memorial/memorials/"])
}
