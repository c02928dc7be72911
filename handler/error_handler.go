package handler

import (
	"net/http"

	"echotrace-api/common"
)

// ErrorHandlingMiddleware adapts handlers returning *AppError into plain
// http.HandlerFunc, converting any failure into the JSON error envelope at
// the boundary.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w, r)
		}
	}
}
