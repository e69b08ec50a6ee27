package services

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
)

// StatusNotifier consumes status-change events back off the broker and
// records who should be told about them. Delivery itself (mail, SMS) is a
// separate worker; this side only resolves the display text.
type StatusNotifier struct{}

func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{}
}

func (n *StatusNotifier) HandleMessage(message string) error {
	var ev dto.StatusChangedEvent
	if err := json.Unmarshal([]byte(message), &ev); err != nil {
		return errors.New("malformed status event")
	}
	if ev.UserID == 0 || ev.To == "" {
		return errors.New("status event missing user or target")
	}

	label, err := status.Text(status.StudentStatus(ev.To))
	if err != nil {
		return err
	}

	if ev.Forced {
		log.Printf("notify student %d: status set to %q by an administrator", ev.UserID, label)
		return nil
	}
	log.Printf("notify student %d: status is now %q", ev.UserID, label)
	return nil
}
