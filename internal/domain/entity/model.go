package entity

import "time"

// Kind identifies one of the four entity kinds in the hierarchy.
type Kind string

const (
	KindClient  Kind = "clients"
	KindProject Kind = "projects"
	KindTask    Kind = "tasks"
	KindTime    Kind = "times"
)

// Status is the lifecycle state of an entity. Deletion is logical; rows
// are never removed from storage.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// PaymentStatus marks whether a time entry has been billed.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Client is the root of the hierarchy.
type Client struct {
	UUID    string    `json:"uuid"`
	UserID  string    `json:"user_id"`
	Name    string    `json:"name"`
	Note    string    `json:"note,omitempty"`
	Status  Status    `json:"status"`
	Commit  string    `json:"commit"`
	Changed time.Time `json:"changed"`
}

// Project belongs to a client.
type Project struct {
	UUID       string    `json:"uuid"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	ClientUUID string    `json:"client_uuid"`
	Status     Status    `json:"status"`
	Commit     string    `json:"commit"`
	Changed    time.Time `json:"changed"`
}

// Task belongs to a project.
type Task struct {
	UUID        string    `json:"uuid"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	ProjectUUID string    `json:"project_uuid"`
	Status      Status    `json:"status"`
	Commit      string    `json:"commit"`
	Changed     time.Time `json:"changed"`
}

// TimeEntry is a billable interval under a task.
type TimeEntry struct {
	UUID          string        `json:"uuid"`
	UserID        string        `json:"user_id"`
	Name          string        `json:"name,omitempty"`
	TaskUUID      string        `json:"task_uuid"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Note          string        `json:"note,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        Status        `json:"status"`
	Commit        string        `json:"commit"`
	Changed       time.Time     `json:"changed"`
}

// Duration is the billed length of the entry.
func (t *TimeEntry) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Entity is the common surface of the four kinds, used where operations
// span the hierarchy (merge results, cascade bookkeeping).
type Entity interface {
	Kind() Kind
	GetUUID() string
	GetCommit() string
	GetStatus() Status
}

func (c *Client) Kind() Kind        { return KindClient }
func (c *Client) GetUUID() string   { return c.UUID }
func (c *Client) GetCommit() string { return c.Commit }
func (c *Client) GetStatus() Status { return c.Status }

func (p *Project) Kind() Kind        { return KindProject }
func (p *Project) GetUUID() string   { return p.UUID }
func (p *Project) GetCommit() string { return p.Commit }
func (p *Project) GetStatus() Status { return p.Status }

func (t *Task) Kind() Kind        { return KindTask }
func (t *Task) GetUUID() string   { return t.UUID }
func (t *Task) GetCommit() string { return t.Commit }
func (t *Task) GetStatus() Status { return t.Status }

func (t *TimeEntry) Kind() Kind        { return KindTime }
func (t *TimeEntry) GetUUID() string   { return t.UUID }
func (t *TimeEntry) GetCommit() string { return t.Commit }
func (t *TimeEntry) GetStatus() Status { return t.Status }
