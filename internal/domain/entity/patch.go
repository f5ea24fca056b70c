package entity

import "time"

// Patch is a partial update to one entity, as submitted by a sync client.
// A nil field is left untouched; a patch without a UUID creates a new
// entity. LastKnownCommit is the server commit the client last saw for the
// target, used only to detect concurrent edits during merge.
type Patch struct {
	Kind            Kind   `json:"kind"`
	UUID            string `json:"uuid,omitempty"`
	LastKnownCommit string `json:"commit,omitempty"`
	Deleted         bool   `json:"deleted,omitempty"`

	Name *string `json:"name,omitempty"`
	Note *string `json:"note,omitempty"`

	ClientUUID  *string `json:"client_uuid,omitempty"`
	ProjectUUID *string `json:"project_uuid,omitempty"`
	TaskUUID    *string `json:"task_uuid,omitempty"`

	Start         *time.Time     `json:"start,omitempty"`
	End           *time.Time     `json:"end,omitempty"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
}
