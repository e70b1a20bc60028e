package shelters

import (
	"time"

	"github.com/crisiswatch/api/internal/features/reports"
)

// Shelter is an emergency shelter shown on the dashboard. The service
// only reads and lists shelters; they are administered, never derived.
type Shelter struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name" json:"name" example:"Central School Gym"`
	Location  reports.Location  `bson:"location" json:"location"`
	Capacity  int               `bson:"capacity" json:"capacity" example:"250"`
	Contact   string            `bson:"contact" json:"contact" example:"+232 76 000000"`
	Type      string            `bson:"type" json:"type" example:"flood" enums:"flood,fire,earthquake,general"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// CreateShelterRequest represents shelter registration data
type CreateShelterRequest struct {
	Name     string            `json:"name" binding:"required"`
	Location *reports.Location `json:"location" binding:"required"`
	Capacity int               `json:"capacity" binding:"required,min=1"`
	Contact  string            `json:"contact" binding:"required"`
	Type     string            `json:"type" binding:"required,oneof=flood fire earthquake general"`
}
