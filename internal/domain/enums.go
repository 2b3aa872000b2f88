package domain

// Status is the lifecycle state shared by tasks and tickets.
// The raw string form is the sole serialization boundary; everything
// in-process uses this closed set.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// ParseStatus maps a remote status string onto the closed status set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusClosed:
		return Status(s), true
	}
	return "", false
}

// Next cycles a status forward through the lifecycle, wrapping at the end.
func (s Status) Next() Status {
	switch s {
	case StatusOpen:
		return StatusInProgress
	case StatusInProgress:
		return StatusClosed
	default:
		return StatusOpen
	}
}
