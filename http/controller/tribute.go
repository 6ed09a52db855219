package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"github.com/memoria-viva/memorial-service/http/controller/dto"
	"github.com/memoria-viva/memorial-service/utils"
	"gorm.io/gorm"
)

func (ctrl *Controller) CreateTribute(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	var req dto.CreateTributeRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to bind JSON: %v", err)
		utils.JSON400(c, "author_name and message are required")
		return
	}

	memorial, err := ctrl.Repository.MemorialRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Memorial not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to load memorial %q: %v", slug, err)
		utils.JSON500(c, "Failed to load memorial")
		return
	}

	tribute := &entity.Tribute{
		ID:         uuid.New(),
		MemorialID: memorial.ID,
		AuthorName: req.AuthorName,
		Message:    req.Message,
	}

	if err := ctrl.Repository.TributeRepo.Create(tribute); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to create tribute for %q: %v", slug, err)
		utils.JSON500(c, "Failed to submit tribute")
		return
	}

	// The cached view is stale now; drop it so the follow-up reload sees the
	// new tribute (and any submitted concurrently by other visitors).
	if err := ctrl.Infra.Redis.Delete(ctx, utils.MemorialViewCacheKey(slug)); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Tribute] Failed to invalidate cached view for %q: %v", slug, err)
	}

	err = ctrl.Infra.Produce.TributeService.PublishTributeCreated(ctx, memorial.ID.String(), slug, tribute.AuthorName)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to publish tribute.created message: %v", err)
		// Don't fail the request, the tribute is already persisted
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Tribute] Tribute %s submitted for memorial %q", tribute.ID, slug)
	utils.JSON201(c, gin.H{
		"message": "Tribute submitted successfully",
		"tribute": tribute,
	})
}

func (ctrl *Controller) ListTributes(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	memorial, err := ctrl.Repository.MemorialRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Memorial not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to load memorial %q: %v", slug, err)
		utils.JSON500(c, "Failed to load memorial")
		return
	}

	tributes, err := ctrl.Repository.TributeRepo.FindByMemorialID(memorial.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tribute] Failed to list tributes for %q: %v", slug, err)
		utils.JSON500(c, "Failed to list tributes")
		return
	}

	utils.JSON200(c, gin.H{"tributes": tributes})
}
