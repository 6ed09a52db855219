package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postTribute(ctrl *Controller, slug, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/memorial/memorials/"+slug+"/tributes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return perform(ctrl.CreateTribute, req, gin.Params{{Key: "slug", Value: slug}}, nil)
}

func TestCreateTributeRequiresAuthorAndMessage(t *testing.T) {
	ctrl, db := newTestController(t)
	seedMemorial(t, db, "joao-da-silva")

	tests := []struct {
		name string
		body string
	}{
		{"missing author", `{"message":"Saudades"}`},
		{"missing message", `{"author_name":"Ana"}`},
		{"empty author", `{"author_name":"","message":"Saudades"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postTribute(ctrl, "joao-da-silva", tt.body)
			require.Equal(t, 400, w.Code)
		})
	}

	// Rejected at binding, nothing persisted
	var count int64
	require.NoError(t, db.Model(&entity.Tribute{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTributeUnknownMemorial(t *testing.T) {
	ctrl, db := newTestController(t)

	w := postTribute(ctrl, "no-such-person", `{"author_name":"Ana","message":"Saudades"}`)
	require.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "Memorial not found")

	var count int64
	require.NoError(t, db.Model(&entity.Tribute{}).Count(&count).Error)
	assert.Zero(t, count)
}
