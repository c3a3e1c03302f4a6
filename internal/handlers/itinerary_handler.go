package handlers

import (
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
)

// ItineraryHandler serves aggregated passenger itineraries
type ItineraryHandler struct {
	itineraryService *services.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// GetPassengerItinerary handles GET /passengers/:id/itinerary
func (h *ItineraryHandler) GetPassengerItinerary(c *gin.Context) {
	passengerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.GetPassengerItinerary(c.Request.Context(), passengerID)
	if err != nil {
		respondError(c, err, "passenger")
		return
	}

	c.JSON(http.StatusOK, itinerary)
}
