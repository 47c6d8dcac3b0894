package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	store StatsStore
}

func NewStatsController(store StatsStore) *StatsController {
	return &StatsController{store: store}
}

// Overview returns collection counts and the total supply quantity.
// GET /stats
func (sc *StatsController) Overview(c *gin.Context) {
	overview, err := sc.store.Overview(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "stats overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// SuppliesByCategory returns supply counts and quantities grouped by category.
// GET /stats/supplies-by-category
func (sc *StatsController) SuppliesByCategory(c *gin.Context) {
	totals, err := sc.store.SuppliesByCategory(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "stats by category")
		return
	}
	c.JSON(http.StatusOK, totals)
}
