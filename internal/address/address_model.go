package address

import (
	"time"

	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/geocode"
)

// Fields are the plain postal fields of an address.
type Fields = geocode.Fields

// Coordinates is a geography(Point, 4326) row. The location column is only read and written
// through PostGIS functions, so it is not mapped here.
type Coordinates struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Coordinates) TableName() string { return "coordinates" }

// CoordinatesRecord is a coordinates row read back as GeoJSON.
type CoordinatesRecord struct {
	ID       uint                `json:"id"`
	Location models.GeoJSONPoint `json:"location"`
}

// Address holds encrypted postal fields. Every string column is ciphertext. OwnerID is the user
// who created it; only they can link it to a profile or a game.
type Address struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OwnerID       string    `gorm:"size:24;not null;index" json:"-"`
	LineOne       string    `gorm:"not null" json:"-"`
	LineTwo       string    `gorm:"not null" json:"-"`
	City          string    `gorm:"not null" json:"-"`
	County        string    `gorm:"not null" json:"-"`
	Country       string    `gorm:"not null" json:"-"`
	PostalCode    string    `gorm:"not null" json:"-"`
	CoordinatesID uint      `gorm:"not null;uniqueIndex" json:"coordinates_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Address) TableName() string { return "addresses" }

// AddressRequest is the body for creating or replacing an address.
type AddressRequest struct {
	LineOne    string  `json:"lineOne" binding:"required,max=200"`
	LineTwo    string  `json:"lineTwo" binding:"max=200"`
	City       string  `json:"city" binding:"required,max=100"`
	County     string  `json:"county" binding:"max=100"`
	Country    string  `json:"country" binding:"required,max=100"`
	PostalCode string  `json:"postalCode" binding:"max=20"`
	Longitude  float64 `json:"longitude" binding:"gte=-180,lte=180"`
	Latitude   float64 `json:"latitude" binding:"gte=-90,lte=90"`
}

func (r AddressRequest) Fields() Fields {
	return Fields{
		LineOne:    r.LineOne,
		LineTwo:    r.LineTwo,
		City:       r.City,
		County:     r.County,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

func (r AddressRequest) Point() models.Point {
	return models.Point{Longitude: r.Longitude, Latitude: r.Latitude}
}

// GeocodeRequest carries the address_components of a geocoder result.
type GeocodeRequest struct {
	AddressComponents []geocode.Component `json:"address_components" binding:"required,min=1"`
}

// AddressResponse is the decrypted view returned to the owner.
type AddressResponse struct {
	ID          uint         `json:"id"`
	Fields      Fields       `json:"fields"`
	Coordinates models.Point `json:"coordinates"`
}
