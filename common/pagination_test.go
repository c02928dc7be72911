package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page := NewPageRequest(0, 10, "createdAt,desc")
		assert.Equal(t, "created_at DESC", page.OrderBy)
		assert.Equal(t, 10, page.Limit())
		assert.Equal(t, 0, page.Offset())
	})

	t.Run("ascending sort and offset", func(t *testing.T) {
		page := NewPageRequest(3, 20, "title,asc")
		assert.Equal(t, "title ASC", page.OrderBy)
		assert.Equal(t, 60, page.Offset())
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		page := NewPageRequest(0, 10, "password;DROP TABLE users,asc")
		assert.Equal(t, "created_at ASC", page.OrderBy)
	})

	t.Run("bounds", func(t *testing.T) {
		page := NewPageRequest(-1, 0, "")
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 10, page.Size)

		page = NewPageRequest(0, 1000, "")
		assert.Equal(t, 10, page.Size)
	})
}

func TestPageRequest_TotalPages(t *testing.T) {
	page := NewPageRequest(0, 10, "")
	assert.Equal(t, 0, page.TotalPages(0))
	assert.Equal(t, 1, page.TotalPages(10))
	assert.Equal(t, 2, page.TotalPages(11))
}
