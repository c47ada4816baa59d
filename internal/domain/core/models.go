package core

import "time"

type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Staff struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branchId"`
	UserID    string    `json:"userId,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Client struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branchId,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BranchDayHours is one row of a branch's weekly operating-hours table.
type BranchDayHours struct {
	DayOfWeek string `json:"dayOfWeek"`
	Closed    bool   `json:"closed"`
	Open      string `json:"open,omitempty"`
	Close     string `json:"close,omitempty"`
}
