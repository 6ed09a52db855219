package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/entity"
	"github.com/memoria-viva/memorial-service/infra"
	"github.com/memoria-viva/memorial-service/repository"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestController backs the repositories with an in-memory database. The
// cache client points at a closed port, so every lookup behaves as a miss.
func newTestController(t *testing.T) (*Controller, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Memorial{},
		&entity.MemorialPhoto{},
		&entity.TimelineEvent{},
		&entity.Tribute{},
	))

	repo := &repository.Repository{
		MemorialRepo: repository.NewMemorialRepository(db),
		PhotoRepo:    repository.NewPhotoRepository(db),
		TimelineRepo: repository.NewTimelineEventRepository(db),
		TributeRepo:  repository.NewTributeRepository(db),
	}

	cfg := &config.Config{EnvConfig: &config.EnvConfig{}}
	cfg.EnvConfig.Environment.Mode = "development"
	cfg.EnvConfig.Storage.ImageBucket = "memorial-images"
	cfg.EnvConfig.Storage.AudioBucket = "memorial-audio"
	cfg.EnvConfig.DomainName = "memoria-viva.example"

	inf := &infra.Infra{
		Logger: infra.InitLoggerClient(cfg.EnvConfig),
		Redis:  &infra.RedisClient{Client: goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})},
	}

	return NewController(cfg, inf, repo), db
}

func seedMemorial(t *testing.T, db *gorm.DB, slug string) *entity.Memorial {
	t.Helper()
	memorial := &entity.Memorial{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      "João da Silva",
		BirthDate: datatypes.Date(time.Date(1940, time.January, 2, 0, 0, 0, 0, time.UTC)),
		DeathDate: datatypes.Date(time.Date(2020, time.March, 4, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, db.Create(memorial).Error)
	return memorial
}

func perform(handler gin.HandlerFunc, req *http.Request, params gin.Params, keys map[string]any) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	for k, v := range keys {
		c.Set(k, v)
	}
	handler(c)
	return w
}
