package survey

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/microbian-systems/survey/log"
	"github.com/microbian-systems/survey/model"
	"github.com/microbian-systems/survey/store"
)

// Store is the persistence collaborator. GetByID reports an absent survey as
// (nil, nil). DeleteItem and DeleteSurvey report failure as false; they never
// abort the caller.
type Store interface {
	GetAllByModule(ctx context.Context, moduleID int) ([]store.Survey, error)
	GetByID(ctx context.Context, id int) (*store.Survey, error)
	Create(ctx context.Context, survey model.Survey) (*store.Survey, error)
	Update(ctx context.Context, survey model.Survey) (*store.Survey, error)
	DeleteItem(ctx context.Context, itemID int) bool
	DeleteSurvey(ctx context.Context, id int) bool
}

// Users resolves an authenticated identity to an account; only the create
// path needs it.
type Users interface {
	GetUser(ctx context.Context, username string) (*store.User, error)
}

// Scope is the caller's authorized module context, resolved per request from
// the access token.
type Scope struct {
	ModuleID int
	Username string
}

// Service implements module-scoped survey CRUD. Authorization mismatches and
// invalid input fail quiet: reads come back as an empty default object,
// writes echo the submitted object untouched, deletes do nothing. Callers
// cannot tell absent, forbidden and invalid apart; that asymmetry hides
// which surveys exist outside the caller's module.
type Service struct {
	store    Store
	users    Users
	audit    Audit
	validate *validator.Validate
}

func NewService(store Store, users Users, audit Audit) *Service {
	return &Service{
		store:    store,
		users:    users,
		audit:    audit,
		validate: validator.New(),
	}
}

// List returns every survey owned by moduleID, in store order. The store
// filters by module; no per-entity scope check happens here.
func (s *Service) List(ctx context.Context, moduleID int) ([]model.Survey, error) {
	rows, err := s.store.GetAllByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	return ToSurveys(rows), nil
}

type access int

const (
	accessFound access = iota
	accessForbidden
	accessNotFound
)

func readAccess(row *store.Survey, scope Scope) access {
	switch {
	case row == nil:
		return accessNotFound
	case row.ModuleID != scope.ModuleID:
		return accessForbidden
	default:
		return accessFound
	}
}

// Get returns the survey, or the empty default object when it is absent or
// owned by another module. The two cases are indistinguishable on the wire.
func (s *Service) Get(ctx context.Context, id int, scope Scope) (model.Survey, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ToSurvey(nil), err
	}
	if readAccess(row, scope) != accessFound {
		return ToSurvey(nil), nil
	}
	return ToSurvey(row), nil
}

// Create persists the submitted survey graph under the caller's module,
// stamping the creator's user id server-side. Invalid input or a module
// outside the caller's scope leaves storage untouched and echoes the input
// back unchanged.
func (s *Service) Create(ctx context.Context, in model.Survey, scope Scope) (model.Survey, error) {
	if !s.allowWrite(in, scope) {
		return in, nil
	}

	user, err := s.users.GetUser(ctx, scope.Username)
	if err != nil {
		return in, err
	}
	in.UserID = user.UserID
	in.CreatedBy = scope.Username
	in.ModifiedBy = scope.Username

	row, err := s.store.Create(ctx, in)
	if err != nil {
		return in, err
	}

	out := ToSurvey(row)
	s.audit.Log(log.InfoLevel, FunctionCreate, "Survey Added", out)
	return out, nil
}

// Update replaces the stored survey graph with the submitted one. Same
// silent-reject policy as Create; an id with no stored row is also a no-op.
func (s *Service) Update(ctx context.Context, id int, in model.Survey, scope Scope) (model.Survey, error) {
	in.SurveyID = id
	if !s.allowWrite(in, scope) {
		return in, nil
	}
	in.ModifiedBy = scope.Username

	row, err := s.store.Update(ctx, in)
	if err != nil {
		return in, err
	}
	if row == nil {
		return in, nil
	}

	out := ToSurvey(row)
	s.audit.Log(log.InfoLevel, FunctionUpdate, "Survey Updated", out)
	return out, nil
}

func (s *Service) allowWrite(in model.Survey, scope Scope) bool {
	if err := s.validate.Struct(in); err != nil {
		return false
	}
	return in.ModuleID == scope.ModuleID
}

// Delete removes the survey and its items, top down. Every item delete is
// attempted independently and its outcome logged; a failed item never stops
// the loop, and the survey delete runs afterwards regardless. There is no
// transaction across the cascade and no aggregate failure for the caller:
// outcomes are visible in the audit log only. Absent surveys and scope
// mismatches issue no store calls at all.
func (s *Service) Delete(ctx context.Context, id int, scope Scope) error {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if readAccess(row, scope) != accessFound {
		return nil
	}

	survey := ToSurvey(row)
	for _, item := range survey.Items {
		if s.store.DeleteItem(ctx, item.ID) {
			s.audit.Log(log.InfoLevel, FunctionDelete, "Survey Item Deleted", item.ID)
		} else {
			s.audit.Log(log.ErrorLevel, FunctionDelete, "Survey Item NOT Deleted", item.ID)
		}
	}

	if s.store.DeleteSurvey(ctx, id) {
		s.audit.Log(log.InfoLevel, FunctionDelete, "Survey Deleted", id)
	} else {
		s.audit.Log(log.ErrorLevel, FunctionDelete, "Survey NOT Deleted", id)
	}
	return nil
}
