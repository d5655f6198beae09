package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
	"github.com/noah-isme/campus-portal-api/pkg/table"
)

func sessionUser(c *gin.Context) models.User {
	sess := middleware.CurrentSession(c)
	if sess.User == nil {
		return models.User{}
	}
	return *sess.User
}

func actorID(c *gin.Context) string {
	return sessionUser(c).ID
}

// studentKey is the student record the signed in student owns.
func studentKey(c *gin.Context) string {
	return sessionUser(c).StudentID
}

// listQuery reads the domain search term. The table keeps its own "search" parameter.
func listQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("q"))
}

// tableState reads the table parameters. A domain search that differs from prev_q starts over on page 1.
func tableState(c *gin.Context) table.State {
	values := c.Request.URL.Query()
	state := table.StateFromQuery(values)
	if values.Has("prev_q") && strings.TrimSpace(values.Get("prev_q")) != listQuery(c) {
		state = state.WithPage(1)
	}
	return state
}

// respondList sends a page payload together with the table view rendered over its rows.
func respondList(c *gin.Context, data interface{}, view table.View) {
	response.JSON(c, http.StatusOK, data, view.Pagination, map[string]interface{}{"table": view})
}

func bindJSON(c *gin.Context, dst interface{}, what string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
		return false
	}
	return true
}

func notice(title, message string) *response.Notification {
	return &response.Notification{Type: response.NotifySuccess, Title: title, Message: message}
}

func attachment(c *gin.Context, name, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, body)
}
