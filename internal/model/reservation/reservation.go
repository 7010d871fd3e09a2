package reservation

// Reservation books a hall for a client at a given date and time.
type Reservation struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	HallName   string `json:"hallName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}
