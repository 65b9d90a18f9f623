package events

import "time"

const PayrollRunCompletedTopic = "payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType     string    `json:"event_type"`
	RunID         string    `json:"run_id"`
	CompanyID     string    `json:"company_id"`
	Period        string    `json:"period"`
	EmployeeCount int       `json:"employee_count"`
	TotalNet      int64     `json:"total_net"`
	OccurredAt    time.Time `json:"occurred_at"`
}
