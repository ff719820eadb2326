package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanyanv/restaurant-dashboard/internal/service"
)

type managerPayload struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type assignPayload struct {
	ManagerID string `json:"managerId" binding:"required"`
}

// ListManagers returns the managers working at any of the owner's stores.
func (a *API) ListManagers(c *gin.Context) {
	scope, _ := scopeFrom(c)

	managers, err := a.managers.List(scope.UserID)
	if err != nil {
		a.log.WithError(err).Error("list managers failed")
		respondError(c, http.StatusInternalServerError, "could not list managers")
		return
	}
	c.JSON(http.StatusOK, managers)
}

// CreateManager registers a manager account.
func (a *API) CreateManager(c *gin.Context) {
	var payload managerPayload
	if !bindJSON(c, &payload, "name, email and password are required") {
		return
	}

	user, err := a.managers.CreateManager(service.ManagerInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		a.log.WithError(err).Error("create manager failed")
		respondError(c, http.StatusInternalServerError, "could not create manager")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// StoreManagers lists the active manager assignments of one store.
func (a *API) StoreManagers(c *gin.Context) {
	scope, _ := scopeFrom(c)

	assignments, err := a.managers.StoreManagers(scope.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("list store managers failed")
		respondError(c, http.StatusInternalServerError, "could not list store managers")
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// AssignManager links a manager to a store, reactivating a previous
// assignment when one exists.
func (a *API) AssignManager(c *gin.Context) {
	scope, _ := scopeFrom(c)

	var payload assignPayload
	if !bindJSON(c, &payload, "managerId is required") {
		return
	}

	assignment, err := a.managers.Assign(scope.UserID, c.Param("id"), payload.ManagerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, http.StatusNotFound, "store not found or access denied")
		case errors.Is(err, service.ErrManagerNotFound):
			respondError(c, http.StatusNotFound, "manager not found")
		default:
			a.log.WithError(err).Error("assign manager failed")
			respondError(c, http.StatusInternalServerError, "could not assign manager")
		}
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// UnassignManager soft removes a manager from a store.
func (a *API) UnassignManager(c *gin.Context) {
	scope, _ := scopeFrom(c)

	err := a.managers.Unassign(scope.UserID, c.Param("id"), c.Param("managerId"))
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			respondError(c, http.StatusNotFound, "manager assignment not found")
			return
		}
		a.log.WithError(err).Error("unassign manager failed")
		respondError(c, http.StatusInternalServerError, "could not unassign manager")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ManagerStores lists the active stores the signed-in manager covers.
func (a *API) ManagerStores(c *gin.Context) {
	scope, _ := scopeFrom(c)

	stores, err := a.managers.AssignedStores(scope.UserID)
	if err != nil {
		a.log.WithError(err).Error("list assigned stores failed")
		respondError(c, http.StatusInternalServerError, "could not list stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}
