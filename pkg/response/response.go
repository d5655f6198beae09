package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/table"
)

// NotificationType mirrors the toast kinds shown by the portals.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient user facing message attached to a response.
type Notification struct {
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// Envelope represents the common response contract.
type Envelope struct {
	Data         interface{}            `json:"data,omitempty"`
	Error        *appErrors.Error       `json:"error,omitempty"`
	Pagination   *table.Pagination      `json:"pagination,omitempty"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
	Notification *Notification          `json:"notification,omitempty"`
}

// Success builds a success notification.
func Success(message string) *Notification {
	return &Notification{Type: NotifySuccess, Title: "Success", Message: message}
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *table.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Notify sends a success response carrying a notification.
func Notify(c *gin.Context, status int, data interface{}, note *Notification) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Notification: note})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, note *Notification) {
	Notify(c, http.StatusCreated, data, note)
}

// Error sends an error response converting the error to the common structure.
// Everything except field validation also carries an error notification.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	envelope := Envelope{Error: appErr}
	if len(appErr.Fields) == 0 {
		envelope.Notification = &Notification{Type: NotifyError, Title: "Error", Message: appErr.Message}
	}
	c.JSON(appErr.Status, envelope)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
