package projection

import "time"

// Metadata captures persistence timestamps shared by aggregates.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp initialises both timestamps for a record created at now.
func (m *Metadata) Stamp(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch advances UpdatedAt, keeping CreatedAt intact.
func (m *Metadata) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
