package leave

import "time"

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var Types = []string{"vacation", "sick", "personal", "training", "other"}

type Request struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	BranchID   string    `json:"branchId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Type       string    `json:"type"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decidedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
