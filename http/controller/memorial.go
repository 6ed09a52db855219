package controller

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/http/controller/dto"
	"github.com/memoria-viva/memorial-service/utils"
	"github.com/memoria-viva/memorial-service/workflow"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const viewCacheTTL = 5 * time.Minute

func (ctrl *Controller) CreateMemorial(c *gin.Context) {
	ctx := c.Request.Context()
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Memorial] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	birthDate := c.PostForm("birth_date")
	deathDate := c.PostForm("death_date")
	if name == "" || birthDate == "" || deathDate == "" {
		utils.JSON400(c, "name, birth_date and death_date are required")
		return
	}

	in := workflow.Input{
		Name:             name,
		BirthDate:        birthDate,
		DeathDate:        deathDate,
		BriefDescription: c.PostForm("brief_description"),
		LifeStory:        c.PostForm("life_story"),
		MusicName:        c.PostForm("music_name"),
	}

	if raw := c.PostForm("timeline"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Timeline); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Failed to parse timeline payload: %v", err)
			utils.JSON400(c, "Invalid timeline payload")
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Failed to read multipart form: %v", err)
		utils.JSON400(c, "Invalid multipart form")
		return
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	openAsset := func(fh *multipart.FileHeader) (*workflow.Asset, error) {
		f, openErr := fh.Open()
		if openErr != nil {
			return nil, openErr
		}
		opened = append(opened, f)
		return &workflow.Asset{
			Reader:      f,
			Size:        fh.Size,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}, nil
	}

	single := func(field string) (*workflow.Asset, error) {
		headers := form.File[field]
		if len(headers) == 0 {
			return nil, nil
		}
		return openAsset(headers[0])
	}

	in.Background, err = single("background_image")
	if err == nil {
		in.Profile, err = single("profile_image")
	}
	if err == nil {
		in.Music, err = single("music_file")
	}
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Failed to open uploaded file: %v", err)
		utils.JSON400(c, "Failed to read uploaded file: "+err.Error())
		return
	}

	photoAssets := make([]workflow.Asset, 0, len(form.File["memory_photos"]))
	for _, fh := range form.File["memory_photos"] {
		asset, openErr := openAsset(fh)
		if openErr != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, openErr, "[Memorial] Failed to open memory photo: %v", openErr)
			utils.JSON400(c, "Failed to read uploaded file: "+openErr.Error())
			return
		}
		photoAssets = append(photoAssets, *asset)
	}
	in.Photos = workflow.CapMemoryPhotos(nil, photoAssets)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Memorial] Assembling memorial for %q (%d photos, %d timeline entries) by user_id: %s",
		name, len(in.Photos), len(in.Timeline), userIDStr)

	memorial, err := ctrl.Assembly.Run(ctx, in)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Assembly failed: %v", err)
		if errors.Is(err, workflow.ErrInvalidInput) {
			utils.JSON400(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "duplicate key") {
			utils.JSON409(c, "A memorial with this name already exists")
			return
		}
		utils.JSON500(c, "Failed to create memorial")
		return
	}

	ctrl.memorialsCreated.Add(ctx, 1)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Memorial] Successfully created memorial %s with slug %q", memorial.ID, memorial.Slug)
	utils.JSON201(c, gin.H{
		"message":  "Memorial created successfully",
		"slug":     memorial.Slug,
		"memorial": memorial,
	})
}

func (ctrl *Controller) GetMemorialBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	cacheKey := utils.MemorialViewCacheKey(slug)
	var cached dto.MemorialViewResponse
	if err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached); err == nil {
		utils.JSON200(c, cached)
		return
	}

	memorial, err := ctrl.Repository.MemorialRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Memorial not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Failed to load memorial %q: %v", slug, err)
		utils.JSON500(c, "Failed to load memorial")
		return
	}

	// The three child queries are independent of each other.
	view := dto.MemorialViewResponse{Memorial: memorial}
	g := new(errgroup.Group)
	g.Go(func() error {
		var loadErr error
		view.Photos, loadErr = ctrl.Repository.PhotoRepo.FindByMemorialID(memorial.ID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		view.TimelineEvents, loadErr = ctrl.Repository.TimelineRepo.FindByMemorialID(memorial.ID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		view.Tributes, loadErr = ctrl.Repository.TributeRepo.FindByMemorialID(memorial.ID)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Memorial] Failed to load collections for %q: %v", slug, err)
		utils.JSON500(c, "Failed to load memorial")
		return
	}

	if err := ctrl.Infra.Redis.Set(ctx, cacheKey, view, viewCacheTTL); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Memorial] Failed to cache view for %q: %v", slug, err)
	}

	utils.JSON200(c, view)
}
