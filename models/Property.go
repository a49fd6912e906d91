package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	OwnerID        uint            `json:"ownerID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	PropertyType   string          `json:"propertyType"` // apartment, house, duplex, studio, office
	Location       string          `json:"location"`
	Price          float64         `json:"price"`
	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      int             `json:"bathrooms"`
	SquareFeet     int             `json:"squareFeet"`
	RentalDuration string          `json:"rentalDuration"`
	AvailableFrom  string          `json:"availableFrom"`
	ContactPhone   string          `json:"contactPhone"`
	ContactEmail   string          `json:"contactEmail"`
	Amenities      datatypes.JSON  `json:"amenities"`
	Status         string          `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected
	AdminNotes     string          `json:"adminNotes" gorm:"type:text"`
	ReviewedAt     *time.Time      `json:"reviewedAt"`
	Images         []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;references:ID"`
	Bookings       []Booking       `json:"bookings,omitempty"`
	Reviews        []Review        `json:"reviews,omitempty"`
	Owner          User            `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
}

// Custom JSON marshaling so Amenities always serializes as an array
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Amenities []string `json:"amenities"`
		Owner     *User    `json:"owner,omitempty"`
		*Alias
	}{
		Amenities: []string{},
		Owner:     nil,
		Alias:     (*Alias)(p),
	}

	if p.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(p.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	// Only include owner when loaded, without Properties to avoid a circular reference
	if p.Owner.ID > 0 {
		ownerCopy := p.Owner
		ownerCopy.Properties = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}
