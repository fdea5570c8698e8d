package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"usermgmt/internal/auth"
	"usermgmt/model"
	"usermgmt/utils"
)

var (
	// ErrEmailTaken: the email is already registered. The store's
	// unique constraint is the final authority; this is its translation.
	ErrEmailTaken = errors.New("email already in use")
	// ErrNotFound: the target id has no record.
	ErrNotFound = errors.New("user not found")
	// ErrPasswordMismatch: the two copies of a new password differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// UserStore is the persistence surface the service consumes.
// *dao.UserDAO satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	CreateUser(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	ListUsers() ([]model.User, error)
	UpdateFields(id uint64, fields map[string]interface{}) error
	DeleteUser(id uint64) (int64, error)
}

// UserService implements the user lifecycle on top of the store,
// gating every operation through the authorization rule table.
type UserService struct {
	store UserStore
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

// ProfileUpdate carries the self-service profile changes. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Register hashes the password and inserts the new record. Requires no
// principal: registration is the one unauthenticated mutation.
func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Phone:        in.Phone,
	}
	if err := s.store.CreateUser(user); err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Get returns one record; permitted for the owner or an administrator.
func (s *UserService) Get(p *auth.Principal, id uint64) (*model.User, error) {
	if err := auth.Authorize(p, auth.OpRead, id); err != nil {
		return nil, err
	}
	return s.fetch(id)
}

// List returns every record. Deliberately unscoped: any authenticated
// principal sees the full list, while single-record reads stay
// self-or-admin.
func (s *UserService) List(p *auth.Principal) ([]model.User, error) {
	if err := auth.Authorize(p, auth.OpList, 0); err != nil {
		return nil, err
	}
	return s.store.ListUsers()
}

// UpdateProfile applies a partial update to the caller's own record.
func (s *UserService) UpdateProfile(p *auth.Principal, in ProfileUpdate) (*model.User, error) {
	if err := auth.Authorize(p, auth.OpUpdateProfile, principalID(p)); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if len(fields) > 0 {
		if err := s.store.UpdateFields(p.ID, fields); err != nil {
			if isDuplicate(err) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	}
	return s.fetch(p.ID)
}

// ChangePassword replaces the caller's own password hash. Possession of
// the current password is already proven by the authentication step, so
// only the confirmation copy is checked here.
func (s *UserService) ChangePassword(p *auth.Principal, newPassword, repeat string) error {
	if err := auth.Authorize(p, auth.OpChangePassword, principalID(p)); err != nil {
		return err
	}
	if newPassword != repeat {
		return ErrPasswordMismatch
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdateFields(p.ID, map[string]interface{}{"password_hash": hashed})
}

// AdminChangePassword resets another user's password. Administrator
// only; authorization is checked before the target is even fetched.
func (s *UserService) AdminChangePassword(p *auth.Principal, id uint64, newPassword string) error {
	if err := auth.Authorize(p, auth.OpAdminChangePassword, id); err != nil {
		return err
	}
	if _, err := s.fetch(id); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdateFields(id, map[string]interface{}{"password_hash": hashed})
}

// Delete removes the caller's own record. There is no administrator
// override on this path.
func (s *UserService) Delete(p *auth.Principal, id uint64) error {
	if err := auth.Authorize(p, auth.OpDelete, id); err != nil {
		return err
	}
	affected, err := s.store.DeleteUser(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) fetch(id uint64) (*model.User, error) {
	user, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// isDuplicate recognizes the store's unique-constraint rejection in
// both its GORM and raw MySQL (error 1062) forms.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func principalID(p *auth.Principal) uint64 {
	if p == nil {
		return 0
	}
	return p.ID
}
