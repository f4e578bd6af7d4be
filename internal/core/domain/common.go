package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Actor fields carry a caller identifier for API writes and SystemActor
// for scheduler/revaluation writes.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAudit stamps a fresh AuditFields with the same actor and instant on
// both the created and updated pairs.
func NewAudit(actor string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actor,
		LastUpdatedAt: at,
		LastUpdatedBy: actor,
	}
}

// Touch records an update without disturbing the creation pair.
func (a *AuditFields) Touch(actor string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actor
}

// SystemActor is the audit actor recorded for writes performed by
// background components rather than an API caller.
const SystemActor = "system"
