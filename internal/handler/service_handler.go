package handler

import (
	"log"
	"net/http"
	"time"

	"bookiteasy/internal/repository"
	"bookiteasy/internal/service"

	"github.com/gin-gonic/gin"
)

// AvailabilityWindowDays is how far ahead customers can book.
const AvailabilityWindowDays = 7

// ServiceHandler serves the catalog and slot availability
type ServiceHandler struct {
	catalog      *repository.ServiceCatalog
	availability service.AvailabilityService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(catalog *repository.ServiceCatalog, availability service.AvailabilityService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, availability: availability}
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	services := h.catalog.List(repository.CatalogFilters{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		SortBy:   c.Query("sort"),
	})
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Get(c.Param("id")))
}

func (h *ServiceHandler) GetStaff(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Staff())
}

func (h *ServiceHandler) GetAvailability(c *gin.Context) {
	start := time.Now()
	if startParam := c.Query("start"); startParam != "" {
		parsed, err := time.Parse("2006-01-02", startParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format for 'start', use YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	window, err := h.availability.Window(c.Request.Context(), start, AvailabilityWindowDays)
	if err != nil {
		log.Printf("Error generating availability: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}
	c.JSON(http.StatusOK, window)
}

// RegisterServiceRoutes registers catalog routes. Browsing is public.
func (h *ServiceHandler) RegisterServiceRoutes(rg *gin.RouterGroup) {
	serviceGroup := rg.Group("/services")
	{
		serviceGroup.GET("", h.ListServices)
		serviceGroup.GET("/:id", h.GetService)
		serviceGroup.GET("/:id/staff", h.GetStaff)
		serviceGroup.GET("/:id/availability", h.GetAvailability)
	}
}
