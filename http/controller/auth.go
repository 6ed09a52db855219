package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/utils"
)

// GetSession returns the identity behind the current session token. The
// middleware has already rejected requests without a valid session.
func (ctrl *Controller) GetSession(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: "+err.Error())
		return
	}

	utils.JSON200(c, gin.H{
		"user_id": userID.String(),
	})
}

func (ctrl *Controller) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", ctrl.Config.EnvConfig.CORS.GlobalDomain, false, true)
	utils.JSON200(c, gin.H{"message": "Signed out successfully"})
}
