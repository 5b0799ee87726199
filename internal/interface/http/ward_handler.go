package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/pkg/response"
	"github.com/oksasatya/ward-admin/pkg/validation"
)

type WardHandler struct {
	Svc *application.WardService
}

func NewWardHandler(svc *application.WardService) *WardHandler {
	return &WardHandler{Svc: svc}
}

type wardsRequest struct {
	WardCodes []string `json:"ward_codes" binding:"omitempty,dive,ward_code"`
}

func (h *WardHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error[any](c, http.StatusNotFound, application.ErrUserNotFound.Error(), application.ErrUserNotFound.Error())
		return
	}
	codes, err := h.Svc.AssignedWards(c.Request.Context(), id)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load wards", err.Error())
		return
	}
	response.Fields(c, http.StatusOK, "ok", gin.H{"ward_codes": codes})
}

// Replace makes the user's ward set equal to the submitted ward_codes.
// An absent list clears every assignment.
func (h *WardHandler) Replace(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error[any](c, http.StatusNotFound, application.ErrUserNotFound.Error(), application.ErrUserNotFound.Error())
		return
	}
	var req wardsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	codes, err := h.Svc.ReplaceAssignedWards(c.Request.Context(), id, req.WardCodes, actorID(c))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to update wards", err.Error())
		return
	}
	response.Fields(c, http.StatusOK, "wards updated", gin.H{"ward_codes": codes})
}
