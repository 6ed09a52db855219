package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Memorial{},
		&entity.MemorialPhoto{},
		&entity.TimelineEvent{},
		&entity.Tribute{},
	))
	return db
}

func seedMemorial(t *testing.T, db *gorm.DB) *entity.Memorial {
	t.Helper()
	memorial := &entity.Memorial{
		ID:        uuid.New(),
		Slug:      "joao-da-silva",
		Name:      "João da Silva",
		BirthDate: date(1940, time.January, 2),
		DeathDate: date(2020, time.March, 4),
	}
	require.NoError(t, NewMemorialRepository(db).Create(memorial))
	return memorial
}

func date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func TestMemorialFindBySlug(t *testing.T) {
	db := newTestDB(t)
	seeded := seedMemorial(t, db)
	repo := NewMemorialRepository(db)

	found, err := repo.FindBySlug("joao-da-silva")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindBySlug("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsBySlug("joao-da-silva")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPhotosOrderedByDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	memorial := seedMemorial(t, db)
	repo := NewPhotoRepository(db)

	// Inserted out of order on purpose
	for _, order := range []int{2, 0, 1} {
		require.NoError(t, repo.Create(&entity.MemorialPhoto{
			ID:           uuid.New(),
			MemorialID:   memorial.ID,
			PhotoURL:     fmt.Sprintf("https://cdn.example.com/memory-%d.jpg", order),
			DisplayOrder: order,
		}))
	}

	photos, err := repo.FindByMemorialID(memorial.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	for i, photo := range photos {
		assert.Equal(t, i, photo.DisplayOrder)
	}
}

func TestTimelineOrderedByEventDate(t *testing.T) {
	db := newTestDB(t)
	memorial := seedMemorial(t, db)
	repo := NewTimelineEventRepository(db)

	entries := []struct {
		date        datatypes.Date
		description string
	}{
		{date(1999, time.June, 1), "Aposentadoria"},
		{date(1962, time.February, 10), "Casamento"},
		{date(1975, time.December, 25), "Nascimento da filha"},
	}
	for i, entry := range entries {
		require.NoError(t, repo.Create(&entity.TimelineEvent{
			ID:           uuid.New(),
			MemorialID:   memorial.ID,
			EventDate:    entry.date,
			Description:  entry.description,
			DisplayOrder: i,
		}))
	}

	events, err := repo.FindByMemorialID(memorial.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Chronological, regardless of entry order
	assert.Equal(t, "Casamento", events[0].Description)
	assert.Equal(t, "Nascimento da filha", events[1].Description)
	assert.Equal(t, "Aposentadoria", events[2].Description)
}

func TestTributesOrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	memorial := seedMemorial(t, db)
	repo := NewTributeRepository(db)

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	for i, author := range []string{"Ana", "Bruno", "Clara"} {
		require.NoError(t, repo.Create(&entity.Tribute{
			ID:         uuid.New(),
			MemorialID: memorial.ID,
			AuthorName: author,
			Message:    "Saudades",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	tributes, err := repo.FindByMemorialID(memorial.ID)
	require.NoError(t, err)
	require.Len(t, tributes, 3)
	assert.Equal(t, "Clara", tributes[0].AuthorName)
	assert.Equal(t, "Bruno", tributes[1].AuthorName)
	assert.Equal(t, "Ana", tributes[2].AuthorName)

	count, err := repo.CountByMemorialID(memorial.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
