// file: service/log_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"echotrace-api/common"
	"echotrace-api/logger"
	"echotrace-api/model"
	"echotrace-api/repository"
)

const logCacheTTL = 10 * time.Minute

// LogService handles the business logic for engineering-log entries. Every
// operation is scoped to the authenticated username: reads and mutations of
// a log owned by someone else are refused. Paginated listings use a
// cache-aside strategy keyed per owner.
type LogService struct {
	logRepo     repository.ILogRepository
	fileService *FileService
	cacheClient ICacheClient
}

func NewLogService(logRepo repository.ILogRepository, fileService *FileService, cacheClient ICacheClient) *LogService {
	return &LogService{
		logRepo:     logRepo,
		fileService: fileService,
		cacheClient: cacheClient,
	}
}

// CreateLog stores a new entry for the given owner, saving any uploaded
// attachments first.
func (s *LogService) CreateLog(username string, req *model.LogEntryRequest, files []*multipart.FileHeader) (*model.LogEntry, error) {
	entry := &model.LogEntry{
		Title:          req.Title,
		Problem:        req.Problem,
		Solution:       req.Solution,
		ReferenceLinks: emptyIfNil(req.ReferenceLinks),
		Tags:           emptyIfNil(req.Tags),
		CodeSnippet:    req.CodeSnippet,
		FileNames:      []string{},
		CreatedBy:      username,
	}

	for _, file := range files {
		storedName, err := s.fileService.SaveFile(file)
		if err != nil {
			return nil, err
		}
		entry.FileNames = append(entry.FileNames, storedName)
	}

	if err := s.logRepo.Create(entry); err != nil {
		return nil, err
	}

	s.invalidateCache(username)
	logger.Log.WithField("username", username).WithField("log_id", entry.ID).Info("Log entry created")
	return entry, nil
}

// GetLogByID fetches one entry, refusing access to logs of other users.
func (s *LogService) GetLogByID(username string, id int) (*model.LogEntry, error) {
	entry, err := s.logRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	if entry.CreatedBy != username {
		return nil, ErrNotLogOwner
	}
	return entry, nil
}

// ListLogs returns a page of the owner's entries, utilizing a cache-aside
// strategy.
func (s *LogService) ListLogs(username string, page common.PageRequest) (*model.LogPage, error) {
	cacheKey := fmt.Sprintf("logs:%s:%d:%d:%s", username, page.Page, page.Size, page.OrderBy)
	ctx := context.Background()

	// 1. Try the cache first.
	if cached, err := s.cacheClient.Get(ctx, cacheKey).Result(); err == nil {
		var logPage model.LogPage
		if err := json.Unmarshal([]byte(cached), &logPage); err == nil {
			return &logPage, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	entries, total, err := s.logRepo.ListByOwner(username, page)
	if err != nil {
		return nil, err
	}

	logPage := &model.LogPage{
		Content:       emptyIfNil(entries),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    page.TotalPages(total),
	}

	// 3. Store the result for future requests.
	if data, err := json.Marshal(logPage); err == nil {
		s.cacheClient.Set(ctx, cacheKey, data, logCacheTTL)
	}

	return logPage, nil
}

// FilterLogs runs the advanced filter. Results are not cached; the
// criteria space is too wide for useful hit rates.
func (s *LogService) FilterLogs(username string, filter model.LogFilter, page common.PageRequest) (*model.LogPage, error) {
	entries, total, err := s.logRepo.Filter(username, filter, page)
	if err != nil {
		return nil, err
	}

	return &model.LogPage{
		Content:       emptyIfNil(entries),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    page.TotalPages(total),
	}, nil
}

// UpdateLog applies a partial update to an owned entry: blank fields keep
// their stored values, listed attachments are deleted, new uploads appended.
func (s *LogService) UpdateLog(username string, id int, req *model.LogEntryRequest, files []*multipart.FileHeader) (*model.LogEntry, error) {
	entry, err := s.GetLogByID(username, id)
	if err != nil {
		return nil, err
	}

	if req != nil {
		if req.Title != "" {
			entry.Title = req.Title
		}
		if req.Problem != "" {
			entry.Problem = req.Problem
		}
		if req.Solution != "" {
			entry.Solution = req.Solution
		}
		if req.ReferenceLinks != nil {
			entry.ReferenceLinks = req.ReferenceLinks
		}
		if req.Tags != nil {
			entry.Tags = req.Tags
		}
		if req.CodeSnippet != "" {
			entry.CodeSnippet = req.CodeSnippet
		}

		for _, name := range req.FilesToDelete {
			if !removeName(&entry.FileNames, name) {
				continue
			}
			if err := s.fileService.DeleteFile(name); err != nil {
				logger.Log.WithError(err).WithField("file", name).Warn("Failed to delete stored file")
			}
		}
	}

	for _, file := range files {
		storedName, err := s.fileService.SaveFile(file)
		if err != nil {
			return nil, err
		}
		entry.FileNames = append(entry.FileNames, storedName)
	}

	if err := s.logRepo.Update(entry); err != nil {
		return nil, err
	}

	s.invalidateCache(username)
	return entry, nil
}

// DeleteLog removes an owned entry together with its stored attachments.
func (s *LogService) DeleteLog(username string, id int) error {
	entry, err := s.GetLogByID(username, id)
	if err != nil {
		return err
	}

	if err := s.logRepo.Delete(id); err != nil {
		return err
	}

	for _, name := range entry.FileNames {
		if err := s.fileService.DeleteFile(name); err != nil {
			logger.Log.WithError(err).WithField("file", name).Warn("Failed to delete stored file")
		}
	}

	s.invalidateCache(username)
	return nil
}

// invalidateCache drops every cached listing page of the owner.
func (s *LogService) invalidateCache(username string) {
	ctx := context.Background()
	pattern := fmt.Sprintf("logs:%s:*", username)

	var cursor uint64
	for {
		keys, next, err := s.cacheClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to scan log cache keys")
			return
		}
		if len(keys) > 0 {
			s.cacheClient.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func removeName(names *[]string, name string) bool {
	for i, n := range *names {
		if n == name {
			*names = append((*names)[:i], (*names)[i+1:]...)
			return true
		}
	}
	return false
}
