package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

// EmployeeCreatedEvent announces a new employee on the lifecycle topic.
// The code is included so consumers can reference the employee without a
// lookup against the master.
type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	CompanyID    string    `json:"company_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
