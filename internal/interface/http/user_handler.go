package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/interface/views"
	"github.com/oksasatya/ward-admin/pkg/helpers"
	"github.com/oksasatya/ward-admin/pkg/response"
	"github.com/oksasatya/ward-admin/pkg/validation"
)

type UserHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type approveRequest struct {
	UserType *string `json:"user_type"`
}

type searchQuery struct {
	Q    string `form:"q" json:"q"`
	Role string `form:"role" json:"role" binding:"omitempty,role_code"`
	Size int    `form:"size" json:"size" binding:"omitempty,min=1,max=50"`
}

func (h *UserHandler) listPage(c *gin.Context, name, title, base string, list func() (entity.Page[application.UserRow], error)) {
	p, err := list()
	if err != nil {
		helpers.LogError(h.Logger, "list users failed", err, logrus.Fields{"path": base, "request_id": c.GetString("request_id")})
		renderError(c, http.StatusInternalServerError, "could not load users")
		return
	}
	data := viewData(c, h.Cookies, title)
	data["Page"] = p
	data["BasePath"] = base
	data["Roles"] = entity.RoleCatalog()
	c.HTML(http.StatusOK, name, data)
}

// List renders every approved (non-pending) user, newest first.
func (h *UserHandler) List(c *gin.Context) {
	page := pageParam(c)
	h.listPage(c, views.UserInfo, "Users", "/users", func() (entity.Page[application.UserRow], error) {
		return h.Svc.ListApproved(c.Request.Context(), page)
	})
}

// Pending renders the users waiting for approval.
func (h *UserHandler) Pending(c *gin.Context) {
	page := pageParam(c)
	h.listPage(c, views.UserApproval, "Pending approval", "/users/pending", func() (entity.Page[application.UserRow], error) {
		return h.Svc.ListPending(c.Request.Context(), page)
	})
}

// WardManagers renders ward-manager users with their wards.
func (h *UserHandler) WardManagers(c *gin.Context) {
	page := pageParam(c)
	h.listPage(c, views.WardManager, "Ward managers", "/ward-managers", func() (entity.Page[application.UserRow], error) {
		return h.Svc.ListWardManagers(c.Request.Context(), page)
	})
}

func (h *UserHandler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		msg := application.ErrNotFoundOrInvalidState.Error()
		response.Error[any](c, http.StatusNotFound, msg, msg)
		return
	}
	// an unreadable body counts as a missing user_type so the state check still wins
	var req approveRequest
	bindErr := c.ShouldBindJSON(&req)
	if errors.Is(bindErr, io.EOF) {
		bindErr = nil
	}
	if bindErr != nil {
		req.UserType = nil
	}

	u, err := h.Svc.Approve(c.Request.Context(), id, req.UserType, actorID(c))
	switch {
	case err == nil:
	case errors.Is(err, application.ErrNotFoundOrInvalidState):
		response.Error[any](c, http.StatusNotFound, err.Error(), err.Error())
		return
	case errors.Is(err, application.ErrMissingField) && bindErr != nil:
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(bindErr))
		return
	case errors.Is(err, application.ErrMissingField):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"user_type": "is required"})
		return
	case errors.Is(err, application.ErrInvalidRole):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"user_type": err.Error()})
		return
	default:
		helpers.LogError(h.Logger, "approve user failed", err, logrus.Fields{"user_id": id, "request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusInternalServerError, "failed to approve user", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":            u.ID,
		"user_type":     u.Role,
		"role_label":    u.Role.Label(),
		"approval_date": u.ApprovalDate,
		"approval_user": u.ApprovalUserID,
	}, "user approved", nil)
}

// Revoke returns a user to pending approval and redirects back with a flash message.
func (h *UserHandler) Revoke(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		renderError(c, http.StatusNotFound, application.ErrUserNotFound.Error())
		return
	}
	u, err := h.Svc.Revoke(c.Request.Context(), id, actorID(c))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			renderError(c, http.StatusNotFound, err.Error())
			return
		}
		helpers.LogError(h.Logger, "revoke user failed", err, logrus.Fields{"user_id": id, "request_id": c.GetString("request_id")})
		renderError(c, http.StatusInternalServerError, "could not revoke permission")
		return
	}
	h.Cookies.SetFlash(c, "success", "Permission revoked for "+u.Name)
	c.Redirect(http.StatusSeeOther, backURL(c, "/users"))
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), q.Q, entity.Role(q.Role), q.Size)
	if err != nil {
		helpers.LogError(h.Logger, "user search failed", err, logrus.Fields{"q": q.Q, "request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "ok", map[string]any{"count": len(hits)})
}
