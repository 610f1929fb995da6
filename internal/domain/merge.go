package domain

import (
	"strings"
	"time"
)

// MergePartial applies a sparse update. A field replaces the stored value only
// when it is non-nil and, for strings, non-blank, and is then stored as given.
// A blank email or phone is therefore "no change": in a sparse request blank
// cannot be told apart from absent, so clearing an optional field requires a
// full update.
func MergePartial(p *Person, req *PartialUpdateRequest, now time.Time) *Person {
	out := p.Clone()
	if v, ok := supplied(req.FullName); ok {
		out.FullName = v
	}
	if req.BirthDate != nil && !req.BirthDate.IsZero() {
		out.BirthDate = *req.BirthDate
	}
	if v, ok := supplied(req.Phone); ok {
		out.Phone = &v
	}
	if v, ok := supplied(req.Email); ok {
		out.Email = &v
	}
	touch(out, now)
	return out
}

// MergeFull applies a dense update: every field is taken from req exactly as
// given, nil included.
func MergeFull(p *Person, req *UpdateRequest, now time.Time) *Person {
	out := p.Clone()
	out.FullName = req.FullName
	if req.BirthDate != nil {
		out.BirthDate = *req.BirthDate
	} else {
		out.BirthDate = Date{}
	}
	out.Phone = cloneString(req.Phone)
	out.Email = cloneString(req.Email)
	touch(out, now)
	return out
}

// supplied reports a non-blank value, returned as given.
func supplied(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return *s, true
}

func touch(p *Person, now time.Time) {
	ts := clampAfter(now, p.CreatedAt)
	p.UpdatedAt = &ts
}
