package planner

// Result summarizes one reschedule pass for an alarm.
type Result struct {
	AlarmID        string `json:"alarm_id"`
	CancelledCount int    `json:"cancelled_count"`
	DirectCount    int    `json:"direct_count"`
	LeaveByCount   int    `json:"leave_by_count"`
	FailedCount    int    `json:"failed_count"`
}

func (r *Result) ScheduledCount() int {
	return r.DirectCount + r.LeaveByCount
}
