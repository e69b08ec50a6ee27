package repository

import (
	"errors"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkflowRepository owns the atomic trio: workflow status, profile and
// documents always commit in one transaction. UpdateState also takes a row
// lock on the workflow record, so writes for one student are linearized
// even under concurrent requests.
type WorkflowRepository interface {
	CreateWorkflow(userID uint) (*domain.StudentWorkflow, error)
	FindByUserID(userID uint) (*domain.StudentWorkflow, error)
	LoadState(userID uint) (*domain.StudentState, error)
	UpdateState(userID uint, mutate func(*domain.StudentState) error) error
	ListByStatus(s status.StudentStatus, limit, offset int) ([]domain.StudentWorkflow, error)
}

type workflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) CreateWorkflow(userID uint) (*domain.StudentWorkflow, error) {
	if userID == 0 {
		return nil, errors.New("invalid user_id")
	}

	wf := &domain.StudentWorkflow{UserID: userID, Status: status.NewUser}
	if err := r.db.Where("user_id = ?", userID).FirstOrCreate(wf).Error; err != nil {
		return nil, err
	}
	return wf, nil
}

func (r *workflowRepository) FindByUserID(userID uint) (*domain.StudentWorkflow, error) {
	var wf domain.StudentWorkflow
	if err := r.db.Where("user_id = ?", userID).First(&wf).Error; err != nil {
		return nil, err
	}
	return &wf, nil
}

func (r *workflowRepository) LoadState(userID uint) (*domain.StudentState, error) {
	var st domain.StudentState
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return loadState(tx, userID, &st)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateState locks the workflow row, loads the full state, applies mutate
// and saves all three sub-records in the same transaction. If mutate fails
// nothing is written.
func (r *workflowRepository) UpdateState(userID uint, mutate func(*domain.StudentState) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var st domain.StudentState
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&st.Workflow).Error; err != nil {
			return err
		}
		if err := loadProfileAndDocuments(tx, userID, &st); err != nil {
			return err
		}

		if err := mutate(&st); err != nil {
			return err
		}

		if err := tx.Save(&st.Workflow).Error; err != nil {
			return &status.PersistenceWriteFailure{Op: "save workflow", Err: err}
		}
		st.Profile.UserID = userID
		if err := tx.Save(&st.Profile).Error; err != nil {
			return &status.PersistenceWriteFailure{Op: "save profile", Err: err}
		}
		for i := range st.Documents {
			st.Documents[i].UserID = userID
			doc := &st.Documents[i]
			if err := tx.Where("user_id = ? AND key = ?", userID, doc.Key).
				Assign(doc).FirstOrCreate(doc).Error; err != nil {
				return &status.PersistenceWriteFailure{Op: "save document " + string(doc.Key), Err: err}
			}
		}
		return nil
	})
}

func (r *workflowRepository) ListByStatus(s status.StudentStatus, limit, offset int) ([]domain.StudentWorkflow, error) {
	var wfs []domain.StudentWorkflow

	q := r.db.Order("created_at ASC").Limit(limit).Offset(offset)
	if s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Find(&wfs).Error; err != nil {
		return nil, err
	}
	return wfs, nil
}

func loadState(tx *gorm.DB, userID uint, st *domain.StudentState) error {
	if err := tx.Where("user_id = ?", userID).First(&st.Workflow).Error; err != nil {
		return err
	}
	return loadProfileAndDocuments(tx, userID, st)
}

func loadProfileAndDocuments(tx *gorm.DB, userID uint, st *domain.StudentState) error {
	if err := tx.Where("user_id = ?", userID).First(&st.Profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		st.Profile = domain.StudentProfile{UserID: userID}
	}
	return tx.Where("user_id = ?", userID).Order("key ASC").Find(&st.Documents).Error
}
