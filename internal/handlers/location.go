package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/crewzy/workforce-api/internal/errors"
	"github.com/crewzy/workforce-api/internal/geocode"
)

// LocationHandler proxies reverse-geocoding lookups so provider credentials
// never reach the client.
type LocationHandler struct {
	geocoder *geocode.Client
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(geocoder *geocode.Client) *LocationHandler {
	return &LocationHandler{geocoder: geocoder}
}

// ReverseGeocode handles GET /location/reverse-geocode?lat=&lng=.
func (h *LocationHandler) ReverseGeocode(c *gin.Context) {
	lat := c.Query("lat")
	lng := c.Query("lng")
	if lat == "" || lng == "" {
		apierrors.BadRequest(c, "Latitude and longitude are required")
		return
	}

	results, err := h.geocoder.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrNotConfigured):
			apierrors.ServiceUnavailable(c, "Geocoding is not configured")
		case errors.Is(err, geocode.ErrNoResults):
			apierrors.BadGateway(c, err.Error())
		default:
			apierrors.BadGateway(c, "Reverse geocoding failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responseCode": 200,
		"version":      "oauth",
		"results":      results,
	})
}
