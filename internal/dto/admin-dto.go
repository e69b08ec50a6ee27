package dto

// BulkSetStatusRequest is the admin bulk status change. Context names the
// declared policy the change runs under; Force must be explicit for any
// jump that is not a single forward step.
type BulkSetStatusRequest struct {
	StudentIDs []uint `json:"student_ids" validate:"required,min=1"`
	Target     string `json:"target" validate:"required"`
	Context    string `json:"context" validate:"required"`
	Force      bool   `json:"force"`
	Note       string `json:"note,omitempty"`
}

type BulkSetStatusResponse struct {
	Succeeded []uint          `json:"succeeded"`
	Failed    map[uint]string `json:"failed"`
}

type BlockStudentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type AdvanceStudentRequest struct {
	Event string `json:"event" validate:"required"`
}

type StudentListItem struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
}

type RecordPaymentRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Status  string  `json:"status" validate:"required,oneof=Credited Pending Failed"`
	DonorID *uint   `json:"donor_id,omitempty"`
	Date    string  `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Remarks string  `json:"remarks,omitempty"`
}

type AllotmentRequest struct {
	UserID  uint    `json:"user_id" validate:"required"`
	DonorID uint    `json:"donor_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Cycle   string  `json:"cycle" validate:"required"`
	Remarks string  `json:"remarks,omitempty"`
}

type CollegeCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	District string `json:"district"`
	Domain   string `json:"domain"`
}

type DonorCreateRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

type AuditEntryResponse struct {
	ActorID   uint    `json:"actor_id"`
	Action    string  `json:"action"`
	Entity    string  `json:"entity"`
	EntityID  uint    `json:"entity_id"`
	Context   *string `json:"context,omitempty"`
	Forced    bool    `json:"forced"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
}
