package domain

import (
	"time"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"gorm.io/gorm"
)

// StudentWorkflow is the per-student workflow record. Status is only ever
// written through the transition engine; StatusBeforeBlock carries the
// status to restore on unblock.
type StudentWorkflow struct {
	ID                uint                  `gorm:"primaryKey" json:"id"`
	UserID            uint                  `gorm:"uniqueIndex;not null" json:"user_id"`
	Status            status.StudentStatus  `gorm:"type:varchar(40);not null;default:'NEW_USER'" json:"status"`
	StatusBeforeBlock *status.StudentStatus `gorm:"type:varchar(40)" json:"status_before_block,omitempty"`
	BlockedReason     *string               `gorm:"type:text" json:"blocked_reason,omitempty"`
	StatusChangedAt   *time.Time            `json:"status_changed_at,omitempty"`
	gorm.Model
}

// EngineState converts the persisted record into the engine's view of it.
func (w *StudentWorkflow) EngineState() *status.State {
	return &status.State{Current: w.Status, BeforeBlock: w.StatusBeforeBlock}
}

// SetEngineState writes the engine's result back onto the record.
func (w *StudentWorkflow) SetEngineState(st *status.State) {
	w.Status = st.Current
	w.StatusBeforeBlock = st.BeforeBlock
	now := time.Now()
	w.StatusChangedAt = &now
}

// StudentState bundles the three sub-records the persistence layer must
// commit together. A save of this struct is all-or-nothing.
type StudentState struct {
	Workflow  StudentWorkflow
	Profile   StudentProfile
	Documents []StudentDocument
}

// Snapshot assembles the precondition data the engine checks.
func (s *StudentState) Snapshot() status.Snapshot {
	docs := make(map[status.DocumentKey]bool, len(s.Documents))
	for _, d := range s.Documents {
		docs[d.Key] = true
	}
	return status.Snapshot{
		ProfileComplete: s.Profile.Complete(),
		Documents:       docs,
	}
}
