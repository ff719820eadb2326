package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
	"github.com/vanyanv/restaurant-dashboard/internal/service"
)

const (
	sessionUserID   = "user_id"
	sessionUserName = "user_name"
	sessionUserRole = "user_role"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and stores the account in the session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "email and password are required") {
		return
	}

	user, err := a.managers.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		a.log.WithError(err).Error("login failed")
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUserName, user.Name)
	session.Set(sessionUserRole, string(user.Role))
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		a.log.WithError(err).Error("logout failed")
		respondError(c, http.StatusInternalServerError, "could not clear session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the signed-in account.
func (a *API) Me(c *gin.Context) {
	scope, ok := scopeFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not signed in")
		return
	}

	var user db.User
	if err := a.db.First(&user, "id = ?", scope.UserID).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "not signed in")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// AuthRequired rejects requests without a signed-in session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserID) == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOwner rejects sessions that do not belong to an owner account.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := scopeFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !scope.IsOwner() {
			respondError(c, http.StatusForbidden, "owner access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// scopeFrom resolves the access scope from the session. Everything below the
// handlers receives this scope explicitly instead of reading session state.
func scopeFrom(c *gin.Context) (service.AccessScope, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(sessionUserID).(string)
	if !ok || id == "" {
		return service.AccessScope{}, false
	}
	role, _ := session.Get(sessionUserRole).(string)
	return service.AccessScope{UserID: id, Role: db.Role(role)}, true
}
