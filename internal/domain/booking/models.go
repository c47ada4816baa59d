package booking

import "time"

const (
	StatusBooked    = "booked"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

type Appointment struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branchId"`
	ClientID  string    `json:"clientId"`
	StylistID string    `json:"stylistId"`
	ServiceID string    `json:"serviceId"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type SalonService struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branchId"`
	Name        string  `json:"name"`
	DurationMin int     `json:"durationMinutes"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
}
