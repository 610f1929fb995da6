package domain

import (
	"context"
	"strings"
)

// Query identifies which store listing serves a search.
type Query int

const (
	QueryActive Query = iota
	QueryByTaxID
	QueryByName
	QueryByTaxIDAndName
)

func (q Query) String() string {
	switch q {
	case QueryByTaxID:
		return "by_tax_id"
	case QueryByName:
		return "by_name"
	case QueryByTaxIDAndName:
		return "by_tax_id_and_name"
	}
	return "active"
}

// NormalizePage fills unset paging with page 0, size 20, fullName, asc.
// It does not validate; see PageRequest.Validate.
func NormalizePage(f SearchFilter) PageRequest {
	p := PageRequest{Page: 0, Size: DefaultPageSize, Sort: SortByFullName, Direction: Asc}
	if f.Page != nil {
		p.Page = *f.Page
	}
	if f.Size != nil {
		p.Size = *f.Size
	}
	if f.Sort != nil && *f.Sort != "" {
		p.Sort = *f.Sort
	}
	if f.Direction != nil && *f.Direction != "" {
		p.Direction = *f.Direction
	}
	return p
}

// SelectQuery picks the listing for the filters present. Blank strings count as absent.
func SelectQuery(f SearchFilter) Query {
	_, hasTaxID := present(f.TaxID)
	_, hasName := present(f.FullName)
	switch {
	case hasTaxID && hasName:
		return QueryByTaxIDAndName
	case hasTaxID:
		return QueryByTaxID
	case hasName:
		return QueryByName
	}
	return QueryActive
}

// RunQuery executes the listing chosen by SelectQuery.
func RunQuery(ctx context.Context, repo PersonRepository, f SearchFilter, page PageRequest) ([]Person, int64, error) {
	taxID, _ := present(f.TaxID)
	// a malformed filter is kept verbatim and simply matches nothing
	if normalized, ok := NormalizeTaxID(taxID); ok {
		taxID = normalized
	}
	name, _ := present(f.FullName)

	switch SelectQuery(f) {
	case QueryByTaxIDAndName:
		return repo.ListActiveByTaxIDAndName(ctx, taxID, name, page)
	case QueryByTaxID:
		return repo.ListActiveByTaxID(ctx, taxID, page)
	case QueryByName:
		return repo.ListActiveByName(ctx, name, page)
	default:
		return repo.ListActive(ctx, page)
	}
}

func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}
