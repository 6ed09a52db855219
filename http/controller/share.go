package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/utils"
	qrcode "github.com/skip2/go-qrcode"
)

// GetMemorialQRCode renders a PNG QR code pointing at the public memorial
// page, for printing on cards or headstone plaques.
func (ctrl *Controller) GetMemorialQRCode(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	exists, err := ctrl.Repository.MemorialRepo.ExistsBySlug(slug)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Share] Failed to check memorial %q: %v", slug, err)
		utils.JSON500(c, "Failed to generate QR code")
		return
	}
	if !exists {
		utils.JSON404(c, "Memorial not found")
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 {
		size = 64
	}
	if size > 1024 {
		size = 1024
	}

	memorialURL := fmt.Sprintf("https://%s/memorial/%s", ctrl.Config.EnvConfig.DomainName, slug)
	png, err := qrcode.Encode(memorialURL, qrcode.Medium, size)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Share] Failed to encode QR code for %q: %v", slug, err)
		utils.JSON500(c, "Failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
