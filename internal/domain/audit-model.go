package domain

import "time"

// AuditLog records administrative side-channel actions: forced status
// changes, blocks, unblocks and reverts. Forced transitions are never
// written without a matching row here.
type AuditLog struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ActorID  uint    `gorm:"not null;index" json:"actor_id"` // admin user_id
	Action   string  `gorm:"type:varchar(100);not null" json:"action"`
	Entity   string  `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID uint    `gorm:"not null;index" json:"entity_id"`
	Context  *string `gorm:"type:varchar(50)" json:"context,omitempty"` // admin calling context
	Forced   bool    `gorm:"not null;default:false" json:"forced"`
	Note     *string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
