package schedule

import (
	"log/slog"
	"sort"
)

// RawLeave is a leave record as fetched, before timestamp normalization.
// Start and End may be native times, RFC3339 or date strings, or unix
// wrapper objects.
type RawLeave struct {
	EmployeeID string
	Start      any
	End        any
	Status     string
	Type       string
}

// RawLending is a lending record as fetched, before normalization.
type RawLending struct {
	StylistID      string
	FromBranchID   string
	ToBranchID     string
	FromBranchName string
	ToBranchName   string
	Start          any
	End            any
	Status         string
}

// BuildLeaveMap normalizes leave rows into per-employee sorted intervals.
// Records whose timestamps cannot be resolved are dropped with a warning; a
// single bad record never aborts the batch. Rejected and cancelled records
// are inert and excluded here.
func BuildLeaveMap(rows []RawLeave) map[string][]LeaveInterval {
	out := make(map[string][]LeaveInterval)
	for _, row := range rows {
		if row.Status != LeaveStatusPending && row.Status != LeaveStatusApproved {
			continue
		}
		start, end, err := NormalizeInterval(row.Start, row.End)
		if err != nil {
			slog.Warn("dropping leave record with unresolvable dates", "employeeId", row.EmployeeID, "err", err)
			continue
		}
		out[row.EmployeeID] = append(out[row.EmployeeID], LeaveInterval{
			Start:  start,
			End:    end,
			Status: row.Status,
			Type:   row.Type,
		})
	}
	for _, intervals := range out {
		sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })
	}
	return out
}

// BuildLendingMaps splits lending rows into the two directional views for
// branchID: outbound (staff lent elsewhere, blocks local scheduling) and
// inbound (borrowed staff, schedulable only inside the window).
func BuildLendingMaps(branchID string, rows []RawLending) (outbound, inbound map[string][]LendingInterval) {
	outbound = make(map[string][]LendingInterval)
	inbound = make(map[string][]LendingInterval)
	for _, row := range rows {
		start, end, err := NormalizeInterval(row.Start, row.End)
		if err != nil {
			slog.Warn("dropping lending record with unresolvable dates", "stylistId", row.StylistID, "err", err)
			continue
		}
		interval := LendingInterval{
			StylistID:      row.StylistID,
			FromBranchID:   row.FromBranchID,
			ToBranchID:     row.ToBranchID,
			FromBranchName: row.FromBranchName,
			ToBranchName:   row.ToBranchName,
			Start:          start,
			End:            end,
			Status:         row.Status,
		}
		if row.FromBranchID == branchID {
			outbound[row.StylistID] = append(outbound[row.StylistID], interval)
		}
		if row.ToBranchID == branchID {
			inbound[row.StylistID] = append(inbound[row.StylistID], interval)
		}
	}
	for _, m := range []map[string][]LendingInterval{outbound, inbound} {
		for _, intervals := range m {
			sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })
		}
	}
	return outbound, inbound
}
