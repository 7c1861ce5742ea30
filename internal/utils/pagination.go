// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PageParams is the window requested by a listing endpoint.
type PageParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// Page describes the window actually served.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func GetPageParams(c *gin.Context) PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	order := c.DefaultQuery("order", "desc")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if order != "asc" {
		order = "desc"
	}

	return PageParams{
		Page:  page,
		Limit: limit,
		Sort:  c.DefaultQuery("sort", "created_at"),
		Order: order,
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate is a gorm scope ordering by Sort, or created_at when Sort is not in allowedSort,
// and cutting the requested window.
func Paginate(p PageParams, allowedSort ...string) func(*gorm.DB) *gorm.DB {
	sortField := "created_at"
	for _, field := range allowedSort {
		if field == p.Sort {
			sortField = field
			break
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(sortField + " " + p.Order).Offset(p.Offset()).Limit(p.Limit)
	}
}

func NewPage(p PageParams, total int64) Page {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Page{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

func PaginatedResponse(c *gin.Context, data interface{}, page Page) {
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages))
	SuccessResponseWithMeta(c, data, gin.H{"pagination": page})
}
