package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanyanv/restaurant-dashboard/internal/service"
)

type storePayload struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=200"`
	Phone   string `json:"phone" binding:"max=20"`
}

// ListStores returns every store visible to the caller with counters.
func (a *API) ListStores(c *gin.Context) {
	scope, _ := scopeFrom(c)

	stores, err := a.stores.List(scope)
	if err != nil {
		a.log.WithError(err).Error("list stores failed")
		respondError(c, http.StatusInternalServerError, "could not list stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// CreateStore adds a store for the signed-in owner.
func (a *API) CreateStore(c *gin.Context) {
	scope, _ := scopeFrom(c)

	var payload storePayload
	if !bindJSON(c, &payload, "store name is required") {
		return
	}

	store, err := a.stores.Create(scope.UserID, service.StoreInput{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrStoreNameRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		a.log.WithError(err).Error("create store failed")
		respondError(c, http.StatusInternalServerError, "could not create store")
		return
	}
	c.JSON(http.StatusCreated, store)
}

// GetStore returns one store the caller may access.
func (a *API) GetStore(c *gin.Context) {
	scope, _ := scopeFrom(c)

	store, err := a.stores.Get(scope, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("get store failed")
		respondError(c, http.StatusInternalServerError, "could not load store")
		return
	}
	c.JSON(http.StatusOK, store)
}

// UpdateStore changes a store's basic fields.
func (a *API) UpdateStore(c *gin.Context) {
	scope, _ := scopeFrom(c)

	var payload storePayload
	if !bindJSON(c, &payload, "store name is required") {
		return
	}

	store, err := a.stores.Update(scope.UserID, c.Param("id"), service.StoreInput{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, http.StatusNotFound, "store not found or access denied")
		case errors.Is(err, service.ErrStoreNameRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			a.log.WithError(err).Error("update store failed")
			respondError(c, http.StatusInternalServerError, "could not update store")
		}
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore soft deletes a store and its assignments.
func (a *API) DeleteStore(c *gin.Context) {
	scope, _ := scopeFrom(c)

	if err := a.stores.Deactivate(scope.UserID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("deactivate store failed")
		respondError(c, http.StatusInternalServerError, "could not delete store")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ToggleStore flips a store between active and inactive.
func (a *API) ToggleStore(c *gin.Context) {
	scope, _ := scopeFrom(c)

	store, err := a.stores.ToggleStatus(scope.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("toggle store failed")
		respondError(c, http.StatusInternalServerError, "could not update store status")
		return
	}
	c.JSON(http.StatusOK, store)
}
