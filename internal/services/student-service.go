package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/interfaces"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/repository"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
)

const maxDocumentSize = 12 * 1024 * 1024 // 12MB

type StudentService interface {
	GetState(userID uint) (*dto.StudentStateResponse, error)
	ConfirmMobile(userID uint) error
	SaveProfile(userID uint, input dto.ProfileInput) error
	SubmitProfile(userID uint, input dto.ProfileInput) error
	UploadDocument(ctx context.Context, userID uint, key status.DocumentKey, filename string, data []byte) error
	SubmitDocuments(userID uint, ev status.Event) error
	Ledger(userID uint) (*dto.LedgerResponse, error)
}

type studentService struct {
	wfRepo      repository.WorkflowRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	uploader    interfaces.Uploader
	producer    interfaces.ProducerHandler
}

func NewStudentService(
	wfRepo repository.WorkflowRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) StudentService {
	return &studentService{
		wfRepo:      wfRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		uploader:    uploader,
		producer:    producer,
	}
}

func (s *studentService) GetState(userID uint) (*dto.StudentStateResponse, error) {
	if userID == 0 {
		return nil, errors.New("invalid user_id")
	}

	st, err := s.wfRepo.LoadState(userID)
	if err != nil {
		return nil, errors.New("student not found")
	}

	label, err := status.Text(st.Workflow.Status)
	if err != nil {
		return nil, err
	}
	color, err := status.ColorClass(st.Workflow.Status)
	if err != nil {
		return nil, err
	}
	screens, err := status.Screens(st.Workflow.Status)
	if err != nil {
		return nil, err
	}

	docs := make(map[status.DocumentKey]dto.DocumentResponse, len(st.Documents))
	for _, d := range st.Documents {
		docs[d.Key] = dto.DocumentResponse{
			Name: d.FileName,
			Size: d.FileSize,
			URL:  d.FileURL,
		}
	}

	return &dto.StudentStateResponse{
		UserID:      userID,
		Status:      string(st.Workflow.Status),
		StatusLabel: label,
		StatusColor: color,
		Screens:     screens,
		Profile:     profileResponse(&st.Profile),
		Documents:   docs,
	}, nil
}

func (s *studentService) ConfirmMobile(userID uint) error {
	return s.applyEvent(userID, status.EventMobileVerified)
}

// SaveProfile stores a draft without firing a transition. Allowed only
// while the resolver says the profile page is editable.
func (s *studentService) SaveProfile(userID uint, input dto.ProfileInput) error {
	if userID == 0 {
		return errors.New("invalid user_id")
	}

	err := s.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		if err := ensureEditable(st.Workflow.Status, status.PageProfile); err != nil {
			return err
		}
		return applyProfileInput(&st.Profile, input)
	})
	return err
}

// SubmitProfile stores the final profile and fires the profile-submitted
// transition in the same write: either both land or neither does.
func (s *studentService) SubmitProfile(userID uint, input dto.ProfileInput) error {
	if userID == 0 {
		return errors.New("invalid user_id")
	}

	var from, to status.StudentStatus
	err := s.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		if err := ensureEditable(st.Workflow.Status, status.PageProfile); err != nil {
			return err
		}
		if err := applyProfileInput(&st.Profile, input); err != nil {
			return err
		}

		engine := st.Workflow.EngineState()
		from = engine.Current
		if err := engine.Apply(status.EventProfileSubmitted, st.Snapshot()); err != nil {
			return err
		}
		st.Workflow.SetEngineState(engine)
		to = engine.Current

		now := time.Now()
		st.Profile.Submitted = true
		st.Profile.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return err
	}

	s.publishStatusChanged(userID, from, to, status.EventProfileSubmitted, false)
	return nil
}

func (s *studentService) UploadDocument(ctx context.Context, userID uint, key status.DocumentKey, filename string, data []byte) error {
	if userID == 0 {
		return errors.New("invalid user_id")
	}
	if !status.IsDocumentKey(key) {
		return fmt.Errorf("unknown document key %q", key)
	}
	if strings.TrimSpace(filename) == "" || len(data) == 0 {
		return errors.New("file is required")
	}
	if len(data) > maxDocumentSize {
		return errors.New("file is too large")
	}

	// Resolver check before paying for the upload.
	wf, err := s.wfRepo.FindByUserID(userID)
	if err != nil {
		return errors.New("student not found")
	}
	if err := ensureUploadable(wf.Status, key); err != nil {
		return err
	}

	var url string
	if s.uploader != nil {
		folder := fmt.Sprintf("lifeboat/%s", status.PageForDocument(key))
		url, err = s.uploader.UploadBytes(ctx, folder, fmt.Sprintf("%d_%s", userID, key), data)
		if err != nil {
			return fmt.Errorf("upload %s failed: %w", key, err)
		}
	}

	err = s.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		// Re-check under the lock; an admin action may have landed since.
		if err := ensureUploadable(st.Workflow.Status, key); err != nil {
			return err
		}

		doc := domain.StudentDocument{
			UserID:   userID,
			Key:      key,
			FileName: filename,
			FileSize: int64(len(data)),
		}
		if url != "" {
			doc.FileURL = &url
		}

		for i := range st.Documents {
			if st.Documents[i].Key == key {
				doc.ID = st.Documents[i].ID
				st.Documents[i] = doc
				return nil
			}
		}
		st.Documents = append(st.Documents, doc)
		return nil
	})
	return err
}

// SubmitDocuments fires one of the document-submission transitions. The
// engine rejects it if a required key is missing.
func (s *studentService) SubmitDocuments(userID uint, ev status.Event) error {
	switch ev {
	case status.EventPersonalDocsSubmitted, status.EventAcademicDocsSubmitted, status.EventReceiptSubmitted:
	default:
		return fmt.Errorf("event %q is not a document submission", ev)
	}
	return s.applyEvent(userID, ev)
}

func (s *studentService) Ledger(userID uint) (*dto.LedgerResponse, error) {
	if userID == 0 {
		return nil, errors.New("invalid user_id")
	}

	recs, err := s.paymentRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.PaymentEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, paymentEntry(r))
	}

	out := &dto.LedgerResponse{
		Entries:       entries,
		TotalReceived: domain.TotalReceived(recs),
	}
	if last := domain.LastReceived(recs); last != nil {
		e := paymentEntry(*last)
		out.LastReceived = &e
	}
	return out, nil
}

// applyEvent is the single student-side path into the transition engine.
func (s *studentService) applyEvent(userID uint, ev status.Event) error {
	if userID == 0 {
		return errors.New("invalid user_id")
	}

	var from, to status.StudentStatus
	err := s.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		engine := st.Workflow.EngineState()
		from = engine.Current
		if err := engine.Apply(ev, st.Snapshot()); err != nil {
			return err
		}
		st.Workflow.SetEngineState(engine)
		to = engine.Current
		return nil
	})
	if err != nil {
		return err
	}

	s.publishStatusChanged(userID, from, to, ev, false)
	return nil
}

func (s *studentService) publishStatusChanged(userID uint, from, to status.StudentStatus, ev status.Event, forced bool) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.StatusChangedEvent{
		UserID: userID,
		From:   string(from),
		To:     string(to),
		Event:  string(ev),
		Forced: forced,
		At:     time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte("student.status_changed"), payload); err != nil {
		log.Printf("publish status_changed failed: %v", err)
	}
}

func ensureEditable(current status.StudentStatus, page status.Page) error {
	v, err := status.ScreenFor(current, page)
	if err != nil {
		return err
	}
	if v != status.ViewEditableForm {
		return &status.IllegalTransitionError{
			From: current, To: current,
			Reason: fmt.Sprintf("%s page is not editable (%s)", page, v),
		}
	}
	return nil
}

func ensureUploadable(current status.StudentStatus, key status.DocumentKey) error {
	page := status.PageForDocument(key)
	v, err := status.ScreenFor(current, page)
	if err != nil {
		return err
	}
	if v == status.ViewEditableForm {
		return nil
	}
	if page == status.PagePayments && v == status.ViewReceiptUpload {
		return nil
	}
	return &status.IllegalTransitionError{
		From: current, To: current,
		Reason: fmt.Sprintf("%s page does not accept uploads (%s)", page, v),
	}
}

func applyProfileInput(p *domain.StudentProfile, input dto.ProfileInput) error {
	if p.Submitted {
		return errors.New("profile already submitted")
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return errors.New("first_name and last_name are required")
	}

	p.FirstName = firstName
	p.LastName = lastName
	p.Gender = strings.TrimSpace(input.Gender)
	p.Address = strings.TrimSpace(input.Address)
	p.CollegeID = input.CollegeID
	p.Course = strings.TrimSpace(input.Course)
	p.YearOfStudy = input.YearOfStudy
	p.MarksPercent = input.MarksPercent
	p.GuardianName = strings.TrimSpace(input.GuardianName)
	p.GuardianIncome = input.GuardianIncome
	p.Declaration = input.Declaration

	if dobStr := strings.TrimSpace(input.DOB); dobStr != "" {
		dob, err := time.Parse("2006-01-02", dobStr)
		if err != nil {
			return errors.New("dob must be YYYY-MM-DD")
		}
		p.DOB = &dob
	}
	return nil
}

func profileResponse(p *domain.StudentProfile) dto.ProfileResponse {
	out := dto.ProfileResponse{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Gender:         p.Gender,
		Address:        p.Address,
		CollegeID:      p.CollegeID,
		Course:         p.Course,
		YearOfStudy:    p.YearOfStudy,
		MarksPercent:   p.MarksPercent,
		GuardianName:   p.GuardianName,
		GuardianIncome: p.GuardianIncome,
		Declaration:    p.Declaration,
		Submitted:      p.Submitted,
	}
	if p.DOB != nil {
		d := p.DOB.Format("2006-01-02")
		out.DOB = &d
	}
	return out
}

func paymentEntry(r domain.PaymentRecord) dto.PaymentEntry {
	return dto.PaymentEntry{
		Reference: r.Reference,
		Date:      r.Date.Format("2006-01-02"),
		Amount:    r.Amount,
		Status:    string(r.Status),
		DonorID:   r.DonorID,
		Remarks:   r.Remarks,
	}
}

