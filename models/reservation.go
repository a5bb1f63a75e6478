// File: models/reservation.go
package models

import "time"

// Room is a bookable listing.
type Room struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Person is a guest record.
type Person struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// CheckIn is a reservation whose stay starts today or tomorrow. Names are
// left empty when the referenced record is unknown.
type CheckIn struct {
	PersonID   string `json:"personId,omitempty"`
	PersonName string `json:"person,omitempty"`
	CheckDate  string `json:"checkDate"`
	RoomID     string `json:"roomId,omitempty"`
	RoomName   string `json:"listings,omitempty"`
}

// ReservationInput is the payload for creating a reservation. Dates are
// typed as dd/MM/yyyy.
type ReservationInput struct {
	Name        string  `json:"name" binding:"required"`
	PersonName  string  `json:"personName" binding:"required"`
	PersonPhone string  `json:"personPhone"`
	RoomID      string  `json:"roomId" binding:"required"`
	TotalPrice  float64 `json:"totalPrice" binding:"gte=0"`
	Deposit     float64 `json:"kapora" binding:"gte=0"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
}

// Reservation is a validated reservation ready to be written, with ISO dates.
type Reservation struct {
	Name       string
	PersonID   string
	RoomID     string
	TotalPrice float64
	Deposit    float64
	StartDate  string
	EndDate    string
}

// CleaningInput logs a cleaning visit for a room.
type CleaningInput struct {
	RoomID string `json:"roomId" binding:"required"`
}

// Cleaning is a cleaning visit ready to be written.
type Cleaning struct {
	RoomID string
	Amount float64
	At     time.Time
}
