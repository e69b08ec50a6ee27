package dto

// Kafka event payloads. Keys are the topic routing keys
// (student.status_changed, student.blocked, payment.recorded).

type StatusChangedEvent struct {
	UserID uint   `json:"user_id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Event  string `json:"event"`
	Forced bool   `json:"forced"`
	At     string `json:"at"`
}

type StudentBlockedEvent struct {
	UserID  uint   `json:"user_id"`
	AdminID uint   `json:"admin_id"`
	Reason  string `json:"reason"`
	At      string `json:"at"`
}

type PaymentRecordedEvent struct {
	UserID    uint    `json:"user_id"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	At        string  `json:"at"`
}
