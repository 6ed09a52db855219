package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"github.com/memoria-viva/memorial-service/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// MaxMemoryPhotos caps the memory photo gallery per memorial.
const MaxMemoryPhotos = 12

const dateLayout = "2006-01-02"

// ErrInvalidInput marks rejections raised before any upload or insert, so the
// HTTP layer can answer with a client error instead of a server one.
var ErrInvalidInput = errors.New("invalid memorial input")

var tracer = otel.Tracer("github.com/memoria-viva/memorial-service/workflow")

// Asset is one user-submitted file attachment.
type Asset struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// TimelineEntry is one user-entered life event. Both fields are required.
type TimelineEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Input carries everything collected from the creation form.
type Input struct {
	Name             string
	BirthDate        string
	DeathDate        string
	BriefDescription string
	LifeStory        string
	MusicName        string

	Background *Asset
	Profile    *Asset
	Music      *Asset
	Photos     []Asset

	Timeline []TimelineEntry
}

// Uploader stores a binary under bucket/path and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, bucketName, objectPath string, reader io.Reader, size int64, contentType string) (string, error)
}

type MemorialStore interface {
	Create(memorial *entity.Memorial) error
}

type PhotoStore interface {
	Create(photo *entity.MemorialPhoto) error
}

type TimelineStore interface {
	Create(event *entity.TimelineEvent) error
}

// Assembly builds one memorial aggregate: slug derivation, asset uploads, the
// primary record insert and the dependent photo/timeline inserts.
//
// The workflow is intentionally not atomic. A failure before the primary
// insert leaves nothing behind; a failure among the concurrent photo or
// timeline operations leaves the primary record and any sibling rows that
// completed. There is no compensating delete; a duplicate slug on retry
// surfaces as the unique-constraint error from the store.
type Assembly struct {
	Uploader  Uploader
	Memorials MemorialStore
	Photos    PhotoStore
	Timeline  TimelineStore

	ImageBucket string
	AudioBucket string
}

// CapMemoryPhotos applies the gallery cap at the input-collection boundary:
// newly selected photos are appended to the accumulated ones, then the list
// is truncated to the first MaxMemoryPhotos.
func CapMemoryPhotos(accumulated, selected []Asset) []Asset {
	merged := make([]Asset, 0, len(accumulated)+len(selected))
	merged = append(merged, accumulated...)
	merged = append(merged, selected...)
	if len(merged) > MaxMemoryPhotos {
		merged = merged[:MaxMemoryPhotos]
	}
	return merged
}

func (a *Assembly) Run(ctx context.Context, in Input) (*entity.Memorial, error) {
	ctx, span := tracer.Start(ctx, "AssembleMemorial")
	defer span.End()

	slug := utils.GenerateSlug(in.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: name %q does not produce a usable slug", ErrInvalidInput, in.Name)
	}
	span.SetAttributes(attribute.String("memorial.slug", slug))

	birthDate, err := time.Parse(dateLayout, in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid birth date %q", ErrInvalidInput, in.BirthDate)
	}
	deathDate, err := time.Parse(dateLayout, in.DeathDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid death date %q", ErrInvalidInput, in.DeathDate)
	}

	eventDates := make([]time.Time, len(in.Timeline))
	for i, entry := range in.Timeline {
		if strings.TrimSpace(entry.Date) == "" || strings.TrimSpace(entry.Description) == "" {
			return nil, fmt.Errorf("%w: timeline entry %d requires both date and description", ErrInvalidInput, i)
		}
		eventDates[i], err = time.Parse(dateLayout, entry.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeline date %q", ErrInvalidInput, entry.Date)
		}
	}

	stamp := time.Now().UnixMilli()

	// The three primary assets upload concurrently; all must settle before
	// the insert because their URLs become column values.
	var backgroundURL, profileURL, musicURL string
	g := new(errgroup.Group)
	if in.Background != nil {
		asset := in.Background
		g.Go(func() error {
			var uploadErr error
			backgroundURL, uploadErr = a.Uploader.Upload(ctx, a.ImageBucket,
				assetPath(slug, "background", stamp, asset.Filename),
				asset.Reader, asset.Size, asset.ContentType)
			return uploadErr
		})
	}
	if in.Profile != nil {
		asset := in.Profile
		g.Go(func() error {
			var uploadErr error
			profileURL, uploadErr = a.Uploader.Upload(ctx, a.ImageBucket,
				assetPath(slug, "profile", stamp, asset.Filename),
				asset.Reader, asset.Size, asset.ContentType)
			return uploadErr
		})
	}
	if in.Music != nil {
		asset := in.Music
		g.Go(func() error {
			var uploadErr error
			musicURL, uploadErr = a.Uploader.Upload(ctx, a.AudioBucket,
				assetPath(slug, "music", stamp, asset.Filename),
				asset.Reader, asset.Size, asset.ContentType)
			return uploadErr
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to upload memorial assets: %w", err)
	}

	memorial := &entity.Memorial{
		ID:               uuid.New(),
		Slug:             slug,
		Name:             in.Name,
		BirthDate:        datatypes.Date(birthDate),
		DeathDate:        datatypes.Date(deathDate),
		BriefDescription: in.BriefDescription,
		LifeStory:        in.LifeStory,
		BackgroundImage:  backgroundURL,
		ProfileImage:     profileURL,
		MusicFile:        musicURL,
		MusicName:        in.MusicName,
	}
	if err := a.Memorials.Create(memorial); err != nil {
		return nil, fmt.Errorf("failed to create memorial record: %w", err)
	}

	photos := in.Photos
	if len(photos) > MaxMemoryPhotos {
		photos = photos[:MaxMemoryPhotos]
	}

	// Upload+insert pairs are independent and run concurrently. Wait reports
	// the first error; sibling pairs run to completion and rows they inserted
	// stay persisted.
	gp := new(errgroup.Group)
	for i := range photos {
		index := i
		photo := photos[i]
		gp.Go(func() error {
			photoURL, uploadErr := a.Uploader.Upload(ctx, a.ImageBucket,
				assetPath(slug, fmt.Sprintf("memory-%d", index), stamp, photo.Filename),
				photo.Reader, photo.Size, photo.ContentType)
			if uploadErr != nil {
				return uploadErr
			}
			return a.Photos.Create(&entity.MemorialPhoto{
				ID:           uuid.New(),
				MemorialID:   memorial.ID,
				PhotoURL:     photoURL,
				DisplayOrder: index,
			})
		})
	}
	if err := gp.Wait(); err != nil {
		return nil, fmt.Errorf("failed to save memory photos: %w", err)
	}

	gt := new(errgroup.Group)
	for i := range in.Timeline {
		index := i
		entry := in.Timeline[i]
		eventDate := eventDates[i]
		gt.Go(func() error {
			return a.Timeline.Create(&entity.TimelineEvent{
				ID:           uuid.New(),
				MemorialID:   memorial.ID,
				EventDate:    datatypes.Date(eventDate),
				Description:  entry.Description,
				DisplayOrder: index,
			})
		})
	}
	if err := gt.Wait(); err != nil {
		return nil, fmt.Errorf("failed to save timeline events: %w", err)
	}

	return memorial, nil
}

func assetPath(slug, role string, stamp int64, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s-%d.%s", slug, role, stamp, ext)
}
