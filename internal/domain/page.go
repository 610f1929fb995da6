package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortField is a sortable Person attribute, named as on the wire.
type SortField string

const (
	SortByID        SortField = "id"
	SortByTaxID     SortField = "taxId"
	SortByFullName  SortField = "fullName"
	SortByBirthDate SortField = "birthDate"
	SortByPhone     SortField = "phone"
	SortByEmail     SortField = "email"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

var sortColumns = map[SortField]string{
	SortByID:        "id",
	SortByTaxID:     "tax_id",
	SortByFullName:  "full_name",
	SortByBirthDate: "birth_date",
	SortByPhone:     "phone",
	SortByEmail:     "email",
	SortByCreatedAt: "created_at",
	SortByUpdatedAt: "updated_at",
}

// Column is the storage column backing the field.
func (f SortField) Column() string { return sortColumns[f] }

func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.TrimSpace(s))
	if _, ok := sortColumns[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// PageRequest is a resolved page/sort selection.
type PageRequest struct {
	Page      int
	Size      int
	Sort      SortField
	Direction Direction
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

func (p PageRequest) Descending() bool { return p.Direction == Desc }

// SortedBy renders the ordering as "fullName: ASC".
func (p PageRequest) SortedBy() string {
	return fmt.Sprintf("%s: %s", p.Sort, strings.ToUpper(string(p.Direction)))
}

func (p PageRequest) Validate() error {
	switch {
	case p.Page < 0:
		return fmt.Errorf("page must be >= 0, got %d", p.Page)
	case p.Size <= 0:
		return fmt.Errorf("size must be > 0, got %d", p.Size)
	case p.Size > MaxPageSize:
		return fmt.Errorf("size must be <= %d, got %d", MaxPageSize, p.Size)
	case p.Page > math.MaxInt/p.Size:
		return fmt.Errorf("page %d is out of range for size %d", p.Page, p.Size)
	case p.Sort.Column() == "":
		return fmt.Errorf("unknown sort field %q", p.Sort)
	case p.Direction != Asc && p.Direction != Desc:
		return fmt.Errorf("unknown sort direction %q", p.Direction)
	}
	return nil
}

// SearchFilter is the raw search input; nil means "not given".
type SearchFilter struct {
	TaxID     *string
	FullName  *string
	Page      *int
	Size      *int
	Sort      *SortField
	Direction *Direction
}

// Terms lists the filter values for NotFound diagnostics.
func (f SearchFilter) Terms() []Term {
	return []Term{
		T("taxId", f.TaxID),
		T("fullName", f.FullName),
		T("page", f.Page),
		T("size", f.Size),
		T("sort", f.Sort),
		T("direction", f.Direction),
	}
}

// Page is one page of search results.
type Page struct {
	Content     []Person  `json:"content"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	Sort        SortField `json:"sort"`
	Direction   Direction `json:"direction"`
	SortedBy    string    `json:"sortedBy"`
	Total       int64     `json:"total"`
	PageCount   int       `json:"pageCount"`
}

func NewPage(req PageRequest, items []Person, total int64) *Page {
	if items == nil {
		items = []Person{}
	}
	count := 0
	if req.Size > 0 {
		count = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page{
		Content:     items,
		CurrentPage: req.Page,
		PageSize:    req.Size,
		Sort:        req.Sort,
		Direction:   req.Direction,
		SortedBy:    req.SortedBy(),
		Total:       total,
		PageCount:   count,
	}
}
