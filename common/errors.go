package common

import (
	"encoding/json"
	"net/http"
	"time"

	"echotrace-api/logger"

	"github.com/sirupsen/logrus"
)

// AppError is the stable JSON error envelope returned by every failing
// endpoint. Timestamp and Path are filled in by Send.
type AppError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	ErrorName string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Err       error     `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:    status,
		ErrorName: http.StatusText(status),
		Message:   message,
		Err:       err,
	}
}

// Send writes the envelope to the response. The internal cause, if any, is
// logged but never exposed to the client.
func (e *AppError) Send(w http.ResponseWriter, r *http.Request) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Status,
			"path":           r.URL.Path,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	e.Timestamp = time.Now()
	e.Path = r.URL.Path

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e)
}
