package handlers

import (
	"errors"
	"net/http"
	"strings"

	"project-records/internal/middleware"
	"project-records/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type userView struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid login form")
		return
	}

	var user models.User
	err := h.DB.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(form.Username)).
		First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusInternalServerError, nil, "internal error")
			return
		}
		fail(c, http.StatusUnauthorized, nil, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		fail(c, http.StatusUnauthorized, nil, "invalid username or password")
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	if err := sess.Save(); err != nil {
		fail(c, http.StatusInternalServerError, nil, "could not save session")
		return
	}

	success(c, http.StatusOK, userView{ID: user.ID, Username: user.Username, Role: user.Role}, "logged in")
}

func (h *Handlers) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	success(c, http.StatusOK, nil, "logged out")
}

// Me: текущий оператор (кладёт middleware.InjectUser)
func (h *Handlers) Me(c *gin.Context) {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		fail(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}
	user := v.(models.User)
	success(c, http.StatusOK, userView{ID: user.ID, Username: user.Username, Role: user.Role}, "")
}
