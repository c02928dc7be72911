package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"echotrace-api/common"
	"echotrace-api/model"
	"echotrace-api/service"
)

// maxUploadSize bounds multipart memory when parsing log attachments.
const maxUploadSize = 32 << 20

type LogHandler struct {
	logService *service.LogService
}

func NewLogHandler(logService *service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// CreateLog godoc
// @Summary      Create a log entry
// @Description  Multipart request with a "log" JSON part and optional "files" parts
// @Tags         logs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        log formData string true "Log entry JSON"
// @Success      200  {object}  model.LogEntry
// @Failure      400  {object}  common.AppError
// @Router       /api/logs [post]
func (h *LogHandler) CreateLog(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	req, files, appErr := decodeLogMultipart(r, true)
	if appErr != nil {
		return appErr
	}

	entry, err := h.logService.CreateLog(username, req, files)
	if err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, entry)
	return nil
}

// GetLogByID godoc
// @Summary      Fetch a single log entry
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Log ID"
// @Success      200  {object}  model.LogEntry
// @Failure      404  {object}  common.AppError
// @Router       /api/logs/id/{id} [get]
func (h *LogHandler) GetLogByID(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid log id", nil)
	}

	entry, err := h.logService.GetLogByID(username, id)
	if err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, entry)
	return nil
}

// ListLogs godoc
// @Summary      List the authenticated user's log entries
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(0)
// @Param        size query int false "Page size" default(10)
// @Param        sort query string false "Sort, e.g. createdAt,desc"
// @Success      200  {object}  model.LogPage
// @Router       /api/logs [get]
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	page, err := h.logService.ListLogs(username, pageRequestFromQuery(r))
	if err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, page)
	return nil
}

// FilterLogs godoc
// @Summary      Filter log entries by keyword, tag and date windows
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        keyword query string false "Matched against title, problem and solution"
// @Param        tag query string false "Exact tag match"
// @Param        beforeDate query string false "ISO timestamp upper bound"
// @Param        afterDate query string false "ISO timestamp lower bound"
// @Param        betweenStart query string false "ISO window start"
// @Param        betweenEnd query string false "ISO window end"
// @Success      200  {object}  model.LogPage
// @Router       /api/logs/filter [get]
func (h *LogHandler) FilterLogs(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	query := r.URL.Query()
	filter := model.LogFilter{
		Keyword: query.Get("keyword"),
		Tag:     query.Get("tag"),
	}

	var appErr *common.AppError
	if filter.BeforeDate, appErr = parseTimeParam(query.Get("beforeDate")); appErr != nil {
		return appErr
	}
	if filter.AfterDate, appErr = parseTimeParam(query.Get("afterDate")); appErr != nil {
		return appErr
	}
	if filter.BetweenStart, appErr = parseTimeParam(query.Get("betweenStart")); appErr != nil {
		return appErr
	}
	if filter.BetweenEnd, appErr = parseTimeParam(query.Get("betweenEnd")); appErr != nil {
		return appErr
	}

	page, err := h.logService.FilterLogs(username, filter, pageRequestFromQuery(r))
	if err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, page)
	return nil
}

// UpdateLog godoc
// @Summary      Partially update a log entry
// @Tags         logs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Log ID"
// @Success      200  {object}  model.LogEntry
// @Failure      403  {object}  common.AppError
// @Router       /api/logs/{id} [patch]
func (h *LogHandler) UpdateLog(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid log id", nil)
	}

	req, files, appErr := decodeLogMultipart(r, false)
	if appErr != nil {
		return appErr
	}

	entry, err := h.logService.UpdateLog(username, id, req, files)
	if err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, entry)
	return nil
}

// DeleteLog godoc
// @Summary      Delete a log entry and its attachments
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Log ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Router       /api/logs/{id} [delete]
func (h *LogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := CurrentUsername(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or missing token", nil)
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid log id", nil)
	}

	if err := h.logService.DeleteLog(username, id); err != nil {
		return logServiceError(err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Log deleted successfully"})
	return nil
}

// decodeLogMultipart extracts the "log" JSON part and "files" uploads. The
// log part is optional on updates; when required is false a missing part
// yields a nil request.
func decodeLogMultipart(r *http.Request, required bool) (*model.LogEntryRequest, []*multipart.FileHeader, *common.AppError) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, common.NewAppError(http.StatusBadRequest, "Invalid multipart request", err)
	}

	var req *model.LogEntryRequest
	logPart := r.FormValue("log")
	if logPart == "" {
		if required {
			return nil, nil, common.NewAppError(http.StatusBadRequest, "Missing log part", nil)
		}
	} else {
		req = &model.LogEntryRequest{}
		if err := json.Unmarshal([]byte(logPart), req); err != nil {
			return nil, nil, common.NewAppError(http.StatusBadRequest, "Invalid log payload", err)
		}
		if required && (req.Title == "" || req.Problem == "" || req.Solution == "") {
			return nil, nil, common.NewAppError(http.StatusBadRequest, "Title, problem and solution are required", nil)
		}
		if appErr := common.ValidateStruct(req); appErr != nil {
			return nil, nil, appErr
		}
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["files"]
	}
	return req, files, nil
}

func pageRequestFromQuery(r *http.Request) common.PageRequest {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("size"))
	sort := query.Get("sort")
	if sort == "" {
		sort = "createdAt,desc"
	}
	return common.NewPageRequest(page, size, sort)
}

// parseTimeParam accepts RFC 3339 timestamps with or without a zone offset.
func parseTimeParam(value string) (*time.Time, *common.AppError) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, common.NewAppError(http.StatusBadRequest, "Invalid date parameter: "+value, nil)
}

func logServiceError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrLogNotFound):
		return common.NewAppError(http.StatusNotFound, "Log not found", nil)
	case errors.Is(err, service.ErrNotLogOwner):
		return common.NewAppError(http.StatusForbidden, "You cannot access this log", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Something went wrong", err)
	}
}
