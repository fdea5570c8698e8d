package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"usermgmt/api/v1/request"
	"usermgmt/internal/auth"
	"usermgmt/internal/metrics"
	"usermgmt/middleware"
	"usermgmt/model"
	"usermgmt/service"
)

// UserAPI exposes the HTTP handlers for the user lifecycle.
type UserAPI struct {
	service *service.UserService
}

// NewUserAPI wires the service layer into the HTTP handlers.
func NewUserAPI(s *service.UserService) *UserAPI {
	return &UserAPI{service: s}
}

// userView is the sanitized record shape returned to clients. The
// password hash never appears here.
type userView struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Phone     *string   `json:"phone"`
}

func viewOf(u *model.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Phone:     u.Phone,
	}
}

// Register handles new account creation. No authentication required.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRegister("bad_request")
		validationFailed(c, err)
		return
	}
	user, err := u.service.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		metrics.IncRegister("error")
		fail(c, err)
		return
	}
	metrics.IncRegister("success")
	c.JSON(http.StatusCreated, gin.H{"result": "ok", "user": viewOf(user)})
}

// List returns all users to any authenticated caller.
func (u *UserAPI) List(c *gin.Context) {
	users, err := u.service.List(middleware.PrincipalFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, viewOf(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok", "users": views})
}

// Get returns a single record, owner-or-administrator only.
func (u *UserAPI) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := u.service.Get(middleware.PrincipalFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok", "user": viewOf(user)})
}

// Delete removes the caller's own record.
func (u *UserAPI) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := u.service.Delete(middleware.PrincipalFrom(c), id); err != nil {
		metrics.IncDelete("error")
		fail(c, err)
		return
	}
	metrics.IncDelete("success")
	c.JSON(http.StatusOK, gin.H{"result": "ok", "message": "Пользователь успешно удален"})
}

// UpdateProfile applies a partial update to the caller's own record.
func (u *UserAPI) UpdateProfile(c *gin.Context) {
	var req request.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	user, err := u.service.UpdateProfile(middleware.PrincipalFrom(c), service.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok", "user": viewOf(user)})
}

// ChangePassword replaces the caller's own password. The current
// password was just proven through Basic auth on this same request.
func (u *UserAPI) ChangePassword(c *gin.Context) {
	var req request.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPasswordChange("self", "bad_request")
		validationFailed(c, err)
		return
	}
	if err := u.service.ChangePassword(middleware.PrincipalFrom(c), req.NewPassword, req.NewPasswordRepeat); err != nil {
		metrics.IncPasswordChange("self", "error")
		fail(c, err)
		return
	}
	metrics.IncPasswordChange("self", "success")
	c.JSON(http.StatusOK, gin.H{"result": "ok", "message": "Пароль успешно изменён"})
}

// AdminChangePassword resets another user's password, administrator only.
func (u *UserAPI) AdminChangePassword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req request.AdminPasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPasswordChange("admin", "bad_request")
		validationFailed(c, err)
		return
	}
	if err := u.service.AdminChangePassword(middleware.PrincipalFrom(c), id, req.NewPassword); err != nil {
		metrics.IncPasswordChange("admin", "error")
		fail(c, err)
		return
	}
	metrics.IncPasswordChange("admin", "success")
	c.JSON(http.StatusOK, gin.H{"result": "ok", "message": "Пароль пользователя успешно изменён"})
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"result": "error", "message": "Ошибка валидации данных"})
		return 0, false
	}
	return id, true
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"result":  "error",
		"message": "Ошибка валидации данных",
		"details": err.Error(),
	})
}

// fail translates the service/auth error kinds to HTTP statuses. The
// core never sees these protocol values.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", `Basic realm="users"`)
		c.JSON(http.StatusUnauthorized, gin.H{"result": "error", "message": "Неверные логин или пароль"})
	case errors.Is(err, auth.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"result": "error", "message": "Недостаточно прав для выполнения операции"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"result": "error", "message": "Пользователь не найден"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"result": "error", "message": "Email уже используется"})
	case errors.Is(err, service.ErrPasswordMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"result": "error", "message": "Пароли не совпадают"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"result": "error", "message": err.Error()})
	}
}
