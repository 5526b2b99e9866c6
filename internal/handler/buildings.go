package handler

import (
	"net/http"

	"github.com/UnknownOlympus/pinpoint/internal/buildings"
	"github.com/gin-gonic/gin"
)

// Catalog is the read-only buildings listing the handler serves.
type Catalog interface {
	Filter(filters buildings.Filters) []buildings.Building
	Architects() []string
}

// BuildingsHandler serves the buildings catalog over HTTP.
type BuildingsHandler struct {
	catalog Catalog
}

// NewBuildingsHandler creates a new buildings handler.
func NewBuildingsHandler(catalog Catalog) *BuildingsHandler {
	return &BuildingsHandler{catalog: catalog}
}

type buildingsQuery struct {
	Architect string `form:"architect"`
	YearFrom  int    `form:"yearFrom"`
	YearTo    int    `form:"yearTo"`
}

// List handles GET /buildings?architect=...&yearFrom=...&yearTo=... requests.
func (h *BuildingsHandler) List(c *gin.Context) {
	var query buildingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "yearFrom and yearTo must be integers"})
		return
	}

	list := h.catalog.Filter(buildings.Filters{
		Architect: query.Architect,
		YearFrom:  query.YearFrom,
		YearTo:    query.YearTo,
	})

	c.JSON(http.StatusOK, gin.H{"buildings": list, "count": len(list)})
}

// Architects handles GET /buildings/architects requests.
func (h *BuildingsHandler) Architects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"architects": h.catalog.Architects()})
}
