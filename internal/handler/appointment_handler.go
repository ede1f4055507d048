package handler

import (
	"errors"
	"log"
	"net/http"

	"bookiteasy/internal/model"
	"bookiteasy/internal/service"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles booking submissions and dashboard actions
type AppointmentHandler struct {
	bookings     service.BookingService
	appointments service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(bookings service.BookingService, appointments service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{bookings: bookings, appointments: appointments}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	status := c.Query("status")
	appts, err := h.appointments.List(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be upcoming, completed, cancelled or all"})
			return
		}
		log.Printf("Error listing appointments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, fieldErrs, err := h.bookings.Book(c.Request.Context(), userID, req)
	if err != nil {
		// Submission failure: field data is fine, persistence was not.
		log.Printf("Error submitting booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"errors": fieldErrs})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.appointments.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error cancelling appointment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.appointments.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotSelected):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("Error rescheduling appointment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule appointment"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Flash returns the pending booking confirmation exactly once.
func (h *AppointmentHandler) Flash(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	flash, err := h.appointments.TakeFlash(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error reading booking flash: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read booking confirmation"})
		return
	}
	if flash == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, flash)
}

// RegisterAppointmentRoutes registers the dashboard and booking routes,
// all behind authentication.
func (h *AppointmentHandler) RegisterAppointmentRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	apptGroup := rg.Group("/appointments", authMW)
	{
		apptGroup.GET("", h.List)
		apptGroup.POST("", h.Create)
		apptGroup.POST("/:id/cancel", h.Cancel)
		apptGroup.POST("/:id/reschedule", h.Reschedule)
		apptGroup.GET("/flash", h.Flash)
	}
}
