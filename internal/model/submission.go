package model

import "time"

// ContactMessage is a public contact-form submission. No image fields.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteRequest is a public quote-form submission. No image fields.
type QuoteRequest struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	PropertyType        string    `json:"propertyType"`
	NumRooms            string    `json:"numRooms,omitempty"`
	CleaningFrequency   string    `json:"cleaningFrequency,omitempty"`
	PreferredDate       string    `json:"preferredDate,omitempty"`
	Service             string    `json:"service"`
	Message             string    `json:"message"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}
