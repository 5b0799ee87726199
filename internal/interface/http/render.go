package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/interface/middleware"
	"github.com/oksasatya/ward-admin/internal/interface/views"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// viewData seeds the values every page layout reads.
func viewData(c *gin.Context, cookies *helpers.Manager, title string) gin.H {
	data := gin.H{"Title": title}
	if id, ok := middleware.IdentityFrom(c); ok {
		data["Identity"] = id
	}
	if cookies != nil {
		data["FlashSuccess"] = cookies.PopFlash(c, "success")
		data["FlashError"] = cookies.PopFlash(c, "error")
	}
	return data
}

func renderError(c *gin.Context, status int, message string) {
	data := gin.H{
		"Title":     http.StatusText(status),
		"Status":    status,
		"Message":   message,
		"RequestID": c.GetString("request_id"),
	}
	if id, ok := middleware.IdentityFrom(c); ok {
		data["Identity"] = id
	}
	c.HTML(status, views.ErrorPage, data)
}

// pageParam reads ?page=, treating anything unparsable as the first page.
func pageParam(c *gin.Context) int {
	p, err := strconv.Atoi(c.Query("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) int64 {
	id, _ := middleware.IdentityFrom(c)
	return id.UserID
}

// backURL returns the same-site Referer path, or fallback.
func backURL(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || u.Path == "" {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
