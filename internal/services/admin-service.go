package services

import (
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
	"github.com/google/uuid"
)

// AdminService is the administrative side channel. Every status change it
// makes still goes through the transition engine; forced jumps additionally
// need an explicit flag, a permitting policy, and an audit row.
type AdminService interface {
	ListStudents(statusFilter string, limit, offset int) ([]dto.StudentListItem, error)
	AdvanceStudent(adminID, userID uint, ev status.Event) error
	BulkSetStatus(adminID uint, input dto.BulkSetStatusRequest) (*dto.BulkSetStatusResponse, error)
	BlockStudent(adminID, userID uint, reason string) error
	UnblockStudent(adminID, userID uint) error
	RevertStudent(adminID, userID uint) error

	RecordPayment(adminID, userID uint, input dto.RecordPaymentRequest) (*domain.PaymentRecord, error)
	CreateAllotment(adminID uint, input dto.AllotmentRequest) error
	ListAllotments(cycle string, limit, offset int) ([]domain.PaymentAllotment, error)

	CreateCollege(adminID uint, input dto.CollegeCreateRequest) error
	ListColleges(limit, offset int) ([]domain.College, error)
	CreateDonor(adminID uint, input dto.DonorCreateRequest) error
	ListDonors(limit, offset int) ([]domain.Donor, error)

	ListAudit(limit, offset int) ([]dto.AuditEntryResponse, error)
	ListStudentAudit(userID uint) ([]dto.AuditEntryResponse, error)
}

type adminService struct {
	wfRepo      repository.WorkflowRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	collegeRepo repository.CollegeRepository
	donorRepo   repository.DonorRepository
	auditRepo   repository.AuditRepository
	producer    interfaces.ProducerHandler
}

func NewAdminService(
	wfRepo repository.WorkflowRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	collegeRepo repository.CollegeRepository,
	donorRepo repository.DonorRepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
) AdminService {
	return &adminService{
		wfRepo:      wfRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		collegeRepo: collegeRepo,
		donorRepo:   donorRepo,
		auditRepo:   auditRepo,
		producer:    producer,
	}
}

func (a *adminService) ListStudents(statusFilter string, limit, offset int) ([]dto.StudentListItem, error) {
	var filter status.StudentStatus
	if statusFilter != "" {
		parsed, err := status.Parse(statusFilter)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	wfs, err := a.wfRepo.ListByStatus(filter, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentListItem, 0, len(wfs))
	for _, wf := range wfs {
		item := dto.StudentListItem{
			UserID: wf.UserID,
			Status: string(wf.Status),
		}
		// registry lookups cannot miss for persisted statuses
		item.StatusLabel, _ = status.Text(wf.Status)
		item.StatusColor, _ = status.ColorClass(wf.Status)

		if user, err := a.userRepo.FindUserById(wf.UserID); err == nil && user != nil {
			item.Name = user.Name
			item.Email = user.Email
		}
		out = append(out, item)
	}
	return out, nil
}

// AdvanceStudent fires a single named forward event, preconditions and all.
func (a *adminService) AdvanceStudent(adminID, userID uint, ev status.Event) error {
	if adminID == 0 || userID == 0 {
		return errors.New("invalid user id")
	}

	var from, to status.StudentStatus
	err := a.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
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

	a.audit(adminID, "advance_student", userID, nil, false, string(ev))
	a.publishStatusChanged(userID, from, to, ev, false)
	return nil
}

func (a *adminService) BulkSetStatus(adminID uint, input dto.BulkSetStatusRequest) (*dto.BulkSetStatusResponse, error) {
	if adminID == 0 {
		return nil, errors.New("invalid admin id")
	}
	if len(input.StudentIDs) == 0 {
		return nil, errors.New("student_ids are required")
	}

	target, err := status.Parse(input.Target)
	if err != nil {
		return nil, err
	}
	pol, err := status.PolicyFor(input.Context)
	if err != nil {
		return nil, err
	}
	if !pol.Permits(target) {
		return nil, &status.IllegalTransitionError{
			To:     target,
			Reason: fmt.Sprintf("target not permitted in context %s", pol.Context),
		}
	}

	result := &dto.BulkSetStatusResponse{
		Succeeded: make([]uint, 0, len(input.StudentIDs)),
		Failed:    make(map[uint]string),
	}

	for _, userID := range input.StudentIDs {
		from, to, forced, err := a.setStatus(userID, target, input.Force)
		if err != nil {
			result.Failed[userID] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, userID)

		ctxName := pol.Context
		note := input.Note
		a.audit(adminID, "bulk_set_status", userID, &ctxName, forced, note)
		a.publishStatusChanged(userID, from, to, "admin_set_status", forced)
	}
	return result, nil
}

// setStatus moves one student to target. A single forward step runs as the
// normal event with its preconditions; anything else needs force.
func (a *adminService) setStatus(userID uint, target status.StudentStatus, force bool) (from, to status.StudentStatus, forced bool, err error) {
	err = a.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		engine := st.Workflow.EngineState()
		from = engine.Current

		if engine.Current == target {
			return &status.IllegalTransitionError{From: from, To: target, Reason: "already at target"}
		}

		if next, serr := status.Successor(engine.Current); serr == nil && next == target {
			ev, ok := status.ForwardEventFor(engine.Current)
			if !ok {
				return &status.IllegalTransitionError{From: from, To: target, Reason: "no forward event"}
			}
			if aerr := engine.Apply(ev, st.Snapshot()); aerr != nil {
				return aerr
			}
		} else {
			if !force {
				return &status.IllegalTransitionError{From: from, To: target, Reason: "not a single forward step; force required"}
			}
			if ferr := engine.ForceTo(target); ferr != nil {
				return ferr
			}
			forced = true
		}

		st.Workflow.SetEngineState(engine)
		to = engine.Current
		return nil
	})
	return from, to, forced, err
}

func (a *adminService) BlockStudent(adminID, userID uint, reason string) error {
	if adminID == 0 || userID == 0 {
		return errors.New("invalid user id")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.New("reason is required")
	}

	var from status.StudentStatus
	err := a.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		engine := st.Workflow.EngineState()
		from = engine.Current
		if err := engine.Apply(status.EventAdminBlock, status.Snapshot{}); err != nil {
			return err
		}
		st.Workflow.SetEngineState(engine)
		st.Workflow.BlockedReason = &reason
		return nil
	})
	if err != nil {
		return err
	}

	a.audit(adminID, "block_student", userID, nil, false, reason)
	a.publishBlocked(adminID, userID, reason)
	a.publishStatusChanged(userID, from, status.Blocked, status.EventAdminBlock, false)
	return nil
}

func (a *adminService) UnblockStudent(adminID, userID uint) error {
	if adminID == 0 || userID == 0 {
		return errors.New("invalid user id")
	}

	var to status.StudentStatus
	err := a.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		engine := st.Workflow.EngineState()
		if err := engine.Apply(status.EventAdminUnblock, status.Snapshot{}); err != nil {
			return err
		}
		st.Workflow.SetEngineState(engine)
		st.Workflow.BlockedReason = nil
		to = engine.Current
		return nil
	})
	if err != nil {
		return err
	}

	a.audit(adminID, "unblock_student", userID, nil, false, "")
	a.publishStatusChanged(userID, status.Blocked, to, status.EventAdminUnblock, false)
	return nil
}

func (a *adminService) RevertStudent(adminID, userID uint) error {
	if adminID == 0 || userID == 0 {
		return errors.New("invalid user id")
	}

	var from, to status.StudentStatus
	err := a.wfRepo.UpdateState(userID, func(st *domain.StudentState) error {
		engine := st.Workflow.EngineState()
		from = engine.Current
		if err := engine.Apply(status.EventAdminRevert, status.Snapshot{}); err != nil {
			return err
		}
		st.Workflow.SetEngineState(engine)
		to = engine.Current
		return nil
	})
	if err != nil {
		return err
	}

	a.audit(adminID, "revert_student", userID, nil, false, "")
	a.publishStatusChanged(userID, from, to, status.EventAdminRevert, false)
	return nil
}

// RecordPayment appends a ledger entry. A credited payment for a student
// sitting at PAYMENT_PENDING also fires the payment-credited transition.
func (a *adminService) RecordPayment(adminID, userID uint, input dto.RecordPaymentRequest) (*domain.PaymentRecord, error) {
	if adminID == 0 || userID == 0 {
		return nil, errors.New("invalid user id")
	}
	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	var pstatus domain.PaymentStatus
	switch domain.PaymentStatus(input.Status) {
	case domain.PaymentCredited, domain.PaymentPending, domain.PaymentFailed:
		pstatus = domain.PaymentStatus(input.Status)
	default:
		return nil, fmt.Errorf("invalid payment status %q", input.Status)
	}

	date := time.Now()
	if d := strings.TrimSpace(input.Date); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	rec := &domain.PaymentRecord{
		UserID:    userID,
		Reference: uuid.NewString(),
		Date:      date,
		Amount:    input.Amount,
		Status:    pstatus,
		DonorID:   input.DonorID,
		Remarks:   strings.TrimSpace(input.Remarks),
	}
	if err := a.paymentRepo.AppendRecord(rec); err != nil {
		return nil, &status.PersistenceWriteFailure{Op: "append payment", Err: err}
	}

	if pstatus == domain.PaymentCredited {
		if wf, err := a.wfRepo.FindByUserID(userID); err == nil && wf.Status == status.PaymentPending {
			if err := a.AdvanceStudent(adminID, userID, status.EventPaymentCredited); err != nil {
				log.Printf("payment credited but transition failed for %d: %v", userID, err)
			}
		}
	}

	a.audit(adminID, "record_payment", userID, nil, false, rec.Reference)
	a.publishPayment(rec)
	return rec, nil
}

// CreateAllotment maps donor funds to a student and moves an eligible
// student into PAYMENT_PENDING.
func (a *adminService) CreateAllotment(adminID uint, input dto.AllotmentRequest) error {
	if adminID == 0 {
		return errors.New("invalid admin id")
	}
	if input.UserID == 0 || input.DonorID == 0 {
		return errors.New("user_id and donor_id are required")
	}
	if input.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if strings.TrimSpace(input.Cycle) == "" {
		return errors.New("cycle is required")
	}

	if _, err := a.donorRepo.FindByID(input.DonorID); err != nil {
		return errors.New("donor not found")
	}

	allot := &domain.PaymentAllotment{
		UserID:  input.UserID,
		DonorID: input.DonorID,
		Amount:  input.Amount,
		Cycle:   strings.TrimSpace(input.Cycle),
		Remarks: strings.TrimSpace(input.Remarks),
	}
	if err := a.paymentRepo.CreateAllotment(allot); err != nil {
		return &status.PersistenceWriteFailure{Op: "create allotment", Err: err}
	}

	if wf, err := a.wfRepo.FindByUserID(input.UserID); err == nil && wf.Status == status.EligibleForScholarship {
		if err := a.AdvanceStudent(adminID, input.UserID, status.EventPaymentAllotted); err != nil {
			log.Printf("allotment created but transition failed for %d: %v", input.UserID, err)
		}
	}

	a.audit(adminID, "create_allotment", input.UserID, nil, false, allot.Cycle)
	return nil
}

func (a *adminService) ListAllotments(cycle string, limit, offset int) ([]domain.PaymentAllotment, error) {
	return a.paymentRepo.ListAllotments(cycle, limit, offset)
}

func (a *adminService) CreateCollege(adminID uint, input dto.CollegeCreateRequest) error {
	if adminID == 0 {
		return errors.New("unauthorized")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return errors.New("name is required")
	}

	c := &domain.College{
		Name:     name,
		District: strings.TrimSpace(input.District),
		Domain:   strings.TrimPrefix(strings.ToLower(strings.TrimSpace(input.Domain)), "@"),
	}
	return a.collegeRepo.AddCollege(c)
}

func (a *adminService) ListColleges(limit, offset int) ([]domain.College, error) {
	return a.collegeRepo.List(limit, offset)
}

func (a *adminService) CreateDonor(adminID uint, input dto.DonorCreateRequest) error {
	if adminID == 0 {
		return errors.New("unauthorized")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" {
		return errors.New("name and email are required")
	}

	d := &domain.Donor{
		Name:    name,
		Email:   email,
		Phone:   input.Phone,
		Company: input.Company,
	}
	return a.donorRepo.AddDonor(d)
}

func (a *adminService) ListDonors(limit, offset int) ([]domain.Donor, error) {
	return a.donorRepo.List(limit, offset)
}

func (a *adminService) ListAudit(limit, offset int) ([]dto.AuditEntryResponse, error) {
	entries, err := a.auditRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return auditResponses(entries), nil
}

// ListStudentAudit returns the full administrative trail for one student.
func (a *adminService) ListStudentAudit(userID uint) ([]dto.AuditEntryResponse, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	entries, err := a.auditRepo.ListByEntity("student", userID)
	if err != nil {
		return nil, err
	}
	return auditResponses(entries), nil
}

func auditResponses(entries []domain.AuditLog) []dto.AuditEntryResponse {
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ActorID:   e.ActorID,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Context:   e.Context,
			Forced:    e.Forced,
			Note:      e.Note,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func (a *adminService) audit(actorID uint, action string, entityID uint, ctxName *string, forced bool, note string) {
	entry := &domain.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "student",
		EntityID: entityID,
		Context:  ctxName,
		Forced:   forced,
	}
	if n := strings.TrimSpace(note); n != "" {
		entry.Note = &n
	}
	if err := a.auditRepo.Record(entry); err != nil {
		log.Printf("audit write failed (%s on %d): %v", action, entityID, err)
	}
}

func (a *adminService) publishStatusChanged(userID uint, from, to status.StudentStatus, ev status.Event, forced bool) {
	if a.producer == nil {
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
	if err := a.producer.PublishMessage([]byte("student.status_changed"), payload); err != nil {
		log.Printf("publish status_changed failed: %v", err)
	}
}

func (a *adminService) publishBlocked(adminID, userID uint, reason string) {
	if a.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.StudentBlockedEvent{
		UserID:  userID,
		AdminID: adminID,
		Reason:  reason,
		At:      time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := a.producer.PublishMessage([]byte("student.blocked"), payload); err != nil {
		log.Printf("publish blocked failed: %v", err)
	}
}

func (a *adminService) publishPayment(rec *domain.PaymentRecord) {
	if a.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.PaymentRecordedEvent{
		UserID:    rec.UserID,
		Reference: rec.Reference,
		Amount:    rec.Amount,
		Status:    string(rec.Status),
		At:        time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := a.producer.PublishMessage([]byte("payment.recorded"), payload); err != nil {
		log.Printf("publish payment failed: %v", err)
	}
}
