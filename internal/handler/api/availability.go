package api

import (
	"errors"
	"net/http"

	"leisure-booking-api/internal/domain/resource"
	resdto "leisure-booking-api/internal/handler/dto/response"
	"leisure-booking-api/internal/handler/httperr"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Day availability grid
// @Description Availability of every resource for one day, quantized to the slot grid
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param type query string false "Resource type filter"
// @Param resourceId query string false "Resource ID filter"
// @Success 200 {array} resdto.ResourceAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetDayGrid(c *gin.Context) {
	filter := queries.AvailabilityFilter{Date: c.Query("date")}
	if filter.Date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("missing date parameter"), "date query parameter is required", nil)
		return
	}

	if typeStr := c.Query("type"); typeStr != "" {
		t := resource.Type(typeStr)
		if !t.IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.New("unknown resource type"), "Unknown resource type", nil)
			return
		}
		filter.ResourceType = &t
	}

	if idStr := c.Query("resourceId"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
			return
		}
		filter.ResourceID = &id
	}

	grid, err := h.availabilityQueries.GetDayGrid(c.Request.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayGrid(grid))
}
