package plans

import (
	"net/http"

	"betting-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// GET /plans
func ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": plans.All()})
}
