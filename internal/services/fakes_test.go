package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
)

// In-memory fakes for the repository and infra interfaces, so service
// behavior can be tested without a database or broker.

type fakeWorkflowRepo struct {
	mu     sync.Mutex
	states map[uint]*domain.StudentState
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{states: make(map[uint]*domain.StudentState)}
}

func (r *fakeWorkflowRepo) seed(userID uint, s status.StudentStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = &domain.StudentState{
		Workflow: domain.StudentWorkflow{UserID: userID, Status: s},
		Profile:  domain.StudentProfile{UserID: userID},
	}
}

func (r *fakeWorkflowRepo) CreateWorkflow(userID uint) (*domain.StudentWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[userID]; ok {
		wf := st.Workflow
		return &wf, nil
	}
	r.states[userID] = &domain.StudentState{
		Workflow: domain.StudentWorkflow{UserID: userID, Status: status.NewUser},
		Profile:  domain.StudentProfile{UserID: userID},
	}
	wf := r.states[userID].Workflow
	return &wf, nil
}

func (r *fakeWorkflowRepo) FindByUserID(userID uint) (*domain.StudentWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	wf := st.Workflow
	return &wf, nil
}

func (r *fakeWorkflowRepo) LoadState(userID uint) (*domain.StudentState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *st
	cp.Documents = append([]domain.StudentDocument(nil), st.Documents...)
	return &cp, nil
}

func (r *fakeWorkflowRepo) UpdateState(userID uint, mutate func(*domain.StudentState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[userID]
	if !ok {
		return errors.New("record not found")
	}
	cp := *st
	cp.Documents = append([]domain.StudentDocument(nil), st.Documents...)
	if err := mutate(&cp); err != nil {
		return err
	}
	r.states[userID] = &cp
	return nil
}

func (r *fakeWorkflowRepo) ListByStatus(s status.StudentStatus, limit, offset int) ([]domain.StudentWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StudentWorkflow
	for _, st := range r.states {
		if s == "" || st.Workflow.Status == s {
			out = append(out, st.Workflow)
		}
	}
	return out, nil
}

func (r *fakeWorkflowRepo) statusOf(userID uint) status.StudentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[userID].Workflow.Status
}

type fakeUserRepo struct {
	users     map[uint]*domain.User
	nextID    uint
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		// the competing insert landed first; store it so lookups find it
		winner := *user
		winner.ID = r.nextID
		r.nextID++
		r.users[winner.ID] = &winner
		return nil, err
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeUserRepo) FindUserByGoogleSub(sub string) (*domain.User, error) {
	for _, u := range r.users {
		if u.GoogleSub != nil && *u.GoogleSub == sub {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{
		domain.RoleStudent: {ID: 1, Code: domain.RoleStudent, Name: "Student"},
		domain.RoleAdmin:   {ID: 2, Code: domain.RoleAdmin, Name: "Administrator"},
	}}
}

func (r *fakeRoleRepo) FindByCode(code string) (*domain.Role, error) {
	role, ok := r.roles[code]
	if !ok {
		return nil, errors.New("record not found")
	}
	return role, nil
}

type fakeUserRoleRepo struct {
	assigned  map[uint][]uint
	roleCodes map[uint]string
}

func newFakeUserRoleRepo() *fakeUserRoleRepo {
	return &fakeUserRoleRepo{
		assigned:  make(map[uint][]uint),
		roleCodes: map[uint]string{1: domain.RoleStudent, 2: domain.RoleAdmin},
	}
}

func (r *fakeUserRoleRepo) ReplaceUserRoles(userID uint, roleIDs []uint) error {
	r.assigned[userID] = append([]uint(nil), roleIDs...)
	return nil
}

func (r *fakeUserRoleRepo) UserHasRole(userID uint, roleCode string) (bool, error) {
	for _, id := range r.assigned[userID] {
		if r.roleCodes[id] == roleCode {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentRepo struct {
	records    []domain.PaymentRecord
	allotments []domain.PaymentAllotment
	failAppend bool
}

func (r *fakePaymentRepo) AppendRecord(rec *domain.PaymentRecord) error {
	if r.failAppend {
		return errors.New("disk full")
	}
	rec.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakePaymentRepo) ListByUserID(userID uint) ([]domain.PaymentRecord, error) {
	var out []domain.PaymentRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CreateAllotment(a *domain.PaymentAllotment) error {
	a.ID = uint(len(r.allotments) + 1)
	r.allotments = append(r.allotments, *a)
	return nil
}

func (r *fakePaymentRepo) ListAllotments(cycle string, limit, offset int) ([]domain.PaymentAllotment, error) {
	var out []domain.PaymentAllotment
	for _, a := range r.allotments {
		if cycle == "" || a.Cycle == cycle {
			out = append(out, a)
		}
	}
	return out, nil
}


type fakeCollegeRepo struct {
	colleges []domain.College
}

func (r *fakeCollegeRepo) AddCollege(c *domain.College) error {
	c.ID = uint(len(r.colleges) + 1)
	r.colleges = append(r.colleges, *c)
	return nil
}

func (r *fakeCollegeRepo) FindByID(id uint) (*domain.College, error) {
	for _, c := range r.colleges {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeCollegeRepo) FindByDomain(emailDomain string) (*domain.College, error) {
	for _, c := range r.colleges {
		if c.Domain == emailDomain {
			cp := c
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeCollegeRepo) List(limit, offset int) ([]domain.College, error) {
	return r.colleges, nil
}

type fakeDonorRepo struct {
	donors []domain.Donor
}

func (r *fakeDonorRepo) AddDonor(d *domain.Donor) error {
	d.ID = uint(len(r.donors) + 1)
	r.donors = append(r.donors, *d)
	return nil
}

func (r *fakeDonorRepo) FindByID(id uint) (*domain.Donor, error) {
	for _, d := range r.donors {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeDonorRepo) List(limit, offset int) ([]domain.Donor, error) {
	return r.donors, nil
}

type fakeAuditRepo struct {
	entries []domain.AuditLog
}

func (r *fakeAuditRepo) Record(entry *domain.AuditLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(limit, offset int) ([]domain.AuditLog, error) {
	return r.entries, nil
}

func (r *fakeAuditRepo) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	for _, e := range r.entries {
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) last() *domain.AuditLog {
	if len(r.entries) == 0 {
		return nil
	}
	return &r.entries[len(r.entries)-1]
}

type fakeProducer struct {
	messages []string
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.messages = append(p.messages, fmt.Sprintf("%s:%s", key, value))
	return nil
}

func (p *fakeProducer) published(key string) int {
	n := 0
	for _, m := range p.messages {
		if strings.HasPrefix(m, key+":") {
			n++
		}
	}
	return n
}

func (p *fakeProducer) lastPayload(key string) []byte {
	for i := len(p.messages) - 1; i >= 0; i-- {
		if strings.HasPrefix(p.messages[i], key+":") {
			return []byte(strings.TrimPrefix(p.messages[i], key+":"))
		}
	}
	return nil
}

type fakeUploader struct {
	uploads int
	failing bool
}

func (u *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	if u.failing {
		return "", errors.New("upstream unavailable")
	}
	u.uploads++
	return fmt.Sprintf("https://cdn.example.com/%s/%s", folder, filename), nil
}
