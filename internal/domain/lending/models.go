package lending

import "time"

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Lending assigns a stylist from their home branch to another branch for a
// bounded date window. The scheduling subsystem derives two views from it:
// outbound for the home branch, inbound for the receiving branch.
type Lending struct {
	ID           string    `json:"id"`
	StylistID    string    `json:"stylistId"`
	FromBranchID string    `json:"fromBranchId"`
	ToBranchID   string    `json:"toBranchId"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	DecidedBy    string    `json:"decidedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
