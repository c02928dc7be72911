// file: repository/log_repository.go

package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"echotrace-api/common"
	"echotrace-api/model"

	"github.com/lib/pq"
)

// ILogRepository defines the contract for log-entry persistence.
type ILogRepository interface {
	Create(entry *model.LogEntry) error
	GetByID(id int) (*model.LogEntry, error)
	ListByOwner(username string, page common.PageRequest) ([]*model.LogEntry, int, error)
	Filter(username string, filter model.LogFilter, page common.PageRequest) ([]*model.LogEntry, int, error)
	Update(entry *model.LogEntry) error
	Delete(id int) error
}

// LogRepository implements ILogRepository on Postgres. Array-valued columns
// (tags, reference links, file names) use text[] via pq.Array.
type LogRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{DB: db}
}

const logColumns = `id, title, problem, solution, reference_links, tags, code_snippet, file_names, created_by, created_at, updated_at`

func scanLogEntry(row interface{ Scan(...interface{}) error }) (*model.LogEntry, error) {
	entry := &model.LogEntry{}
	var codeSnippet sql.NullString

	err := row.Scan(
		&entry.ID, &entry.Title, &entry.Problem, &entry.Solution,
		pq.Array(&entry.ReferenceLinks), pq.Array(&entry.Tags),
		&codeSnippet, pq.Array(&entry.FileNames),
		&entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CodeSnippet = codeSnippet.String
	return entry, nil
}

func (r *LogRepository) Create(entry *model.LogEntry) error {
	query := `INSERT INTO log_entries (title, problem, solution, reference_links, tags, code_snippet, file_names, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		entry.Title, entry.Problem, entry.Solution,
		pq.Array(entry.ReferenceLinks), pq.Array(entry.Tags),
		entry.CodeSnippet, pq.Array(entry.FileNames), entry.CreatedBy,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *LogRepository) GetByID(id int) (*model.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries WHERE id = $1`
	return scanLogEntry(r.DB.QueryRow(query, id))
}

func (r *LogRepository) ListByOwner(username string, page common.PageRequest) ([]*model.LogEntry, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM log_entries WHERE created_by = $1`
	if err := r.DB.QueryRow(countQuery, username).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM log_entries WHERE created_by = $1 ORDER BY %s LIMIT $2 OFFSET $3`,
		logColumns, page.OrderBy)
	rows, err := r.DB.Query(query, username, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := collectLogEntries(rows)
	return entries, total, err
}

// Filter builds the WHERE clause from the optional criteria. The keyword is
// matched case-insensitively against title, problem and solution.
func (r *LogRepository) Filter(username string, filter model.LogFilter, page common.PageRequest) ([]*model.LogEntry, int, error) {
	conditions := []string{"created_by = $1"}
	args := []interface{}{username}

	addArg := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Keyword != "" {
		addArg(`(title ILIKE '%%' || $%d || '%%' OR problem ILIKE '%%' || $%[1]d || '%%' OR solution ILIKE '%%' || $%[1]d || '%%')`, filter.Keyword)
	}
	if filter.Tag != "" {
		addArg(`$%d = ANY(tags)`, filter.Tag)
	}
	if filter.BeforeDate != nil {
		addArg(`created_at < $%d`, *filter.BeforeDate)
	}
	if filter.AfterDate != nil {
		addArg(`created_at > $%d`, *filter.AfterDate)
	}
	if filter.BetweenStart != nil && filter.BetweenEnd != nil {
		args = append(args, *filter.BetweenStart, *filter.BetweenEnd)
		conditions = append(conditions, fmt.Sprintf(`created_at BETWEEN $%d AND $%d`, len(args)-1, len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM log_entries WHERE ` + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM log_entries WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		logColumns, where, page.OrderBy, page.Limit(), page.Offset())
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := collectLogEntries(rows)
	return entries, total, err
}

func (r *LogRepository) Update(entry *model.LogEntry) error {
	query := `UPDATE log_entries
	          SET title = $1, problem = $2, solution = $3, reference_links = $4, tags = $5,
	              code_snippet = $6, file_names = $7, updated_at = NOW()
	          WHERE id = $8
	          RETURNING updated_at`
	return r.DB.QueryRow(query,
		entry.Title, entry.Problem, entry.Solution,
		pq.Array(entry.ReferenceLinks), pq.Array(entry.Tags),
		entry.CodeSnippet, pq.Array(entry.FileNames), entry.ID,
	).Scan(&entry.UpdatedAt)
}

func (r *LogRepository) Delete(id int) error {
	query := `DELETE FROM log_entries WHERE id = $1`
	res, err := r.DB.Exec(query, id)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collectLogEntries(rows *sql.Rows) ([]*model.LogEntry, error) {
	var entries []*model.LogEntry
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
