package response

import (
	"leisure-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type GridCellResponse struct {
	StartMin int    `json:"startMin"`
	EndMin   int    `json:"endMin"`
	Status   string `json:"status"`
}

type ResourceAvailabilityResponse struct {
	ResourceID   uuid.UUID          `json:"resourceId"`
	ResourceType string             `json:"resourceType"`
	ResourceName string             `json:"resourceName"`
	Cells        []GridCellResponse `json:"cells"`
}

func FromDayGrid(grid []queries.ResourceAvailability) []ResourceAvailabilityResponse {
	result := make([]ResourceAvailabilityResponse, len(grid))
	for i, ra := range grid {
		cells := make([]GridCellResponse, len(ra.Cells))
		for j, c := range ra.Cells {
			cells[j] = GridCellResponse{StartMin: c.StartMin, EndMin: c.EndMin, Status: c.Status}
		}
		result[i] = ResourceAvailabilityResponse{
			ResourceID:   ra.ResourceID,
			ResourceType: ra.ResourceType.String(),
			ResourceName: ra.ResourceName,
			Cells:        cells,
		}
	}
	return result
}
