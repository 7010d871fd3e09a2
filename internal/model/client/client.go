package client

import "time"

// Client captures the registration details kept for a venue customer.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Job         string    `json:"job,omitempty"`
	Age         int       `json:"age,omitempty"`
	LastVisit   time.Time `json:"lastVisit"`
	IsNewClient bool      `json:"isNewClient"`
}
