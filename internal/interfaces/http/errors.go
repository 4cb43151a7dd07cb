package http

import (
	"net/http"

	"github.com/Youssif-Salama/big-data-be/internal/application/query"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// errorResponse is the failure body.
type errorResponse struct {
	Message string `json:"message"`
}

type notFoundDetails struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
}

type notFoundResponse struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message"`
	Details notFoundDetails `json:"details"`
}

var notFoundMessages = map[string]string{
	http.MethodGet:    "The requested resource was not found",
	http.MethodPost:   "The endpoint does not accept POST requests",
	http.MethodPut:    "The endpoint does not accept PUT requests",
	http.MethodDelete: "The endpoint does not accept DELETE requests",
	http.MethodPatch:  "The endpoint does not accept PATCH requests",
}

// writeError is the single place a pipeline failure becomes a response.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := query.StatusOf(err)
	entry := h.logger.WithError(err).WithFields(logrus.Fields{
		"status": status,
		"path":   c.Request.URL.Path,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.AbortWithStatusJSON(status, errorResponse{Message: query.MessageOf(err)})
}

func notFound(c *gin.Context) {
	message, ok := notFoundMessages[c.Request.Method]
	if !ok {
		message = "The requested operation is not supported"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, notFoundResponse{
		OK:      false,
		Message: message,
		Details: notFoundDetails{
			Method:   c.Request.Method,
			Endpoint: c.Request.URL.RequestURI(),
		},
	})
}
