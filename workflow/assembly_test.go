package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/memoria-viva/memorial-service/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	paths    []string
	failWhen string // substring of object path that triggers failure
}

func (f *fakeUploader) Upload(_ context.Context, bucketName, objectPath string, _ io.Reader, _ int64, _ string) (string, error) {
	if f.failWhen != "" && strings.Contains(objectPath, f.failWhen) {
		return "", errors.New("upload rejected")
	}
	f.mu.Lock()
	f.paths = append(f.paths, bucketName+"/"+objectPath)
	f.mu.Unlock()
	return "https://cdn.example.com/" + bucketName + "/" + objectPath, nil
}

type fakeMemorialStore struct {
	created []*entity.Memorial
	err     error
}

func (f *fakeMemorialStore) Create(m *entity.Memorial) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, m)
	return nil
}

type fakePhotoStore struct {
	mu        sync.Mutex
	photos    []entity.MemorialPhoto
	failOrder int // display order that triggers failure, -1 for none
}

func (f *fakePhotoStore) Create(p *entity.MemorialPhoto) error {
	if f.failOrder >= 0 && p.DisplayOrder == f.failOrder {
		return errors.New("insert rejected")
	}
	f.mu.Lock()
	f.photos = append(f.photos, *p)
	f.mu.Unlock()
	return nil
}

type fakeTimelineStore struct {
	mu     sync.Mutex
	events []entity.TimelineEvent
}

func (f *fakeTimelineStore) Create(e *entity.TimelineEvent) error {
	f.mu.Lock()
	f.events = append(f.events, *e)
	f.mu.Unlock()
	return nil
}

func asset(name string) *Asset {
	return &Asset{
		Reader:      bytes.NewReader([]byte("binary")),
		Size:        6,
		Filename:    name,
		ContentType: "application/octet-stream",
	}
}

func newAssembly() (*Assembly, *fakeUploader, *fakeMemorialStore, *fakePhotoStore, *fakeTimelineStore) {
	uploader := &fakeUploader{}
	memorials := &fakeMemorialStore{}
	photos := &fakePhotoStore{failOrder: -1}
	timeline := &fakeTimelineStore{}
	a := &Assembly{
		Uploader:    uploader,
		Memorials:   memorials,
		Photos:      photos,
		Timeline:    timeline,
		ImageBucket: "memorial-images",
		AudioBucket: "memorial-audio",
	}
	return a, uploader, memorials, photos, timeline
}

func TestAssemblyHappyPath(t *testing.T) {
	a, uploader, memorials, photos, timeline := newAssembly()

	in := Input{
		Name:             "João da Silva Jr.",
		BirthDate:        "1940-03-15",
		DeathDate:        "2023-11-02",
		BriefDescription: "Um homem querido",
		LifeStory:        "Nasceu em São Paulo...",
		MusicName:        "Garota de Ipanema",
		Background:       asset("field.jpg"),
		Profile:          asset("portrait.PNG"),
		Music:            asset("song.mp3"),
		Photos:           []Asset{*asset("a.jpg"), *asset("b.jpg"), *asset("c.jpg")},
		Timeline: []TimelineEntry{
			{Date: "1985-06-01", Description: "Casamento"},
			{Date: "1962-01-20", Description: "Formatura"},
		},
	}

	memorial, err := a.Run(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, memorial)

	assert.Equal(t, "joao-da-silva-jr", memorial.Slug)
	assert.Equal(t, "João da Silva Jr.", memorial.Name)
	assert.Contains(t, memorial.BackgroundImage, "memorial-images/joao-da-silva-jr/background-")
	assert.Contains(t, memorial.ProfileImage, "memorial-images/joao-da-silva-jr/profile-")
	assert.Contains(t, memorial.MusicFile, "memorial-audio/joao-da-silva-jr/music-")
	assert.Equal(t, "Garota de Ipanema", memorial.MusicName)

	require.Len(t, memorials.created, 1)

	require.Len(t, photos.photos, 3)
	orders := make([]int, 0, 3)
	for _, p := range photos.photos {
		assert.Equal(t, memorial.ID, p.MemorialID)
		assert.Contains(t, p.PhotoURL, "joao-da-silva-jr/memory-")
		orders = append(orders, p.DisplayOrder)
	}
	sort.Ints(orders)
	assert.Equal(t, []int{0, 1, 2}, orders)

	require.Len(t, timeline.events, 2)
	for _, e := range timeline.events {
		assert.Equal(t, memorial.ID, e.MemorialID)
	}

	// Path convention: {slug}/{role}-{timestamp}.{ext}, lowercase extension.
	pathPattern := regexp.MustCompile(`^memorial-(images|audio)/joao-da-silva-jr/(background|profile|music|memory-\d+)-\d+\.(jpg|png|mp3)$`)
	assert.Len(t, uploader.paths, 6)
	for _, p := range uploader.paths {
		assert.Regexp(t, pathPattern, p)
	}
}

func TestAssemblyWithoutOptionalAssets(t *testing.T) {
	a, uploader, memorials, photos, timeline := newAssembly()

	memorial, err := a.Run(context.Background(), Input{
		Name:      "Maria José",
		BirthDate: "1950-01-01",
		DeathDate: "2024-06-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria-jose", memorial.Slug)
	assert.Empty(t, memorial.BackgroundImage)
	assert.Empty(t, memorial.ProfileImage)
	assert.Empty(t, memorial.MusicFile)
	assert.Empty(t, uploader.paths)
	assert.Len(t, memorials.created, 1)
	assert.Empty(t, photos.photos)
	assert.Empty(t, timeline.events)
}

func TestAssemblyPrimaryInsertFailureLeavesNoChildren(t *testing.T) {
	a, _, memorials, photos, timeline := newAssembly()
	memorials.err = errors.New(`duplicate key value violates unique constraint "idx_memorials_slug"`)

	_, err := a.Run(context.Background(), Input{
		Name:      "Pedro Alves",
		BirthDate: "1930-05-05",
		DeathDate: "2020-12-12",
		Photos:    []Asset{*asset("a.jpg"), *asset("b.jpg")},
		Timeline:  []TimelineEntry{{Date: "1955-02-02", Description: "Mudança"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create memorial record")
	assert.Empty(t, photos.photos)
	assert.Empty(t, timeline.events)
}

func TestAssemblyPhotoUploadFailureKeepsSiblings(t *testing.T) {
	a, uploader, memorials, photos, _ := newAssembly()
	uploader.failWhen = "memory-2"

	in := Input{
		Name:      "Ana Beatriz",
		BirthDate: "1945-07-07",
		DeathDate: "2022-03-03",
		Photos: []Asset{
			*asset("p0.jpg"), *asset("p1.jpg"), *asset("p2.jpg"),
			*asset("p3.jpg"), *asset("p4.jpg"),
		},
	}

	_, err := a.Run(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save memory photos")

	// The primary record exists and the four sibling pairs stay persisted.
	require.Len(t, memorials.created, 1)
	require.Len(t, photos.photos, 4)
	for _, p := range photos.photos {
		assert.NotEqual(t, 2, p.DisplayOrder)
	}
}

func TestAssemblyPhotoInsertFailureKeepsSiblings(t *testing.T) {
	a, _, memorials, photos, _ := newAssembly()
	photos.failOrder = 1

	_, err := a.Run(context.Background(), Input{
		Name:      "Carlos Eduardo",
		BirthDate: "1938-09-09",
		DeathDate: "2021-01-01",
		Photos:    []Asset{*asset("p0.jpg"), *asset("p1.jpg"), *asset("p2.jpg")},
	})
	require.Error(t, err)
	assert.Len(t, memorials.created, 1)
	assert.Len(t, photos.photos, 2)
}

func TestAssemblyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"unusable name", Input{Name: "!!!", BirthDate: "1940-01-01", DeathDate: "2020-01-01"}},
		{"bad birth date", Input{Name: "Jose", BirthDate: "01/01/1940", DeathDate: "2020-01-01"}},
		{"bad death date", Input{Name: "Jose", BirthDate: "1940-01-01", DeathDate: "yesterday"}},
		{"timeline missing description", Input{
			Name: "Jose", BirthDate: "1940-01-01", DeathDate: "2020-01-01",
			Timeline: []TimelineEntry{{Date: "1960-01-01", Description: "  "}},
		}},
		{"timeline missing date", Input{
			Name: "Jose", BirthDate: "1940-01-01", DeathDate: "2020-01-01",
			Timeline: []TimelineEntry{{Date: "", Description: "Formatura"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, uploader, memorials, _, _ := newAssembly()
			tt.in.Background = asset("bg.jpg")

			_, err := a.Run(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			// Rejected before any remote call.
			assert.Empty(t, uploader.paths)
			assert.Empty(t, memorials.created)
		})
	}
}

func TestCapMemoryPhotos(t *testing.T) {
	accumulated := make([]Asset, 0, 8)
	for i := 0; i < 8; i++ {
		accumulated = append(accumulated, *asset(fmt.Sprintf("old-%d.jpg", i)))
	}
	selected := make([]Asset, 0, 7)
	for i := 0; i < 7; i++ {
		selected = append(selected, *asset(fmt.Sprintf("new-%d.jpg", i)))
	}

	capped := CapMemoryPhotos(accumulated, selected)
	require.Len(t, capped, MaxMemoryPhotos)

	// First 12 after concatenation, relative order preserved.
	for i := 0; i < 8; i++ {
		assert.Equal(t, fmt.Sprintf("old-%d.jpg", i), capped[i].Filename)
	}
	for i := 8; i < MaxMemoryPhotos; i++ {
		assert.Equal(t, fmt.Sprintf("new-%d.jpg", i-8), capped[i].Filename)
	}
}

func TestCapMemoryPhotosUnderCap(t *testing.T) {
	capped := CapMemoryPhotos(nil, []Asset{*asset("only.jpg")})
	require.Len(t, capped, 1)
	assert.Equal(t, "only.jpg", capped[0].Filename)
}
