package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodsphere/server/internal/auth"
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// MyEvents returns the caller's own audit trail, most recent first.
// GET /api/v1/audit-events
func (ac *AuditController) MyEvents(c *gin.Context) {
	limit, offset := parsePagination(c, 25, 100)

	events, total, err := ac.reader.GetEvents(c.Request.Context(), auth.GetEmail(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
