// Package pagination implements the limit/page query contract shared by all
// list endpoints.
package pagination

import "math"

type Params struct {
	Limit int `form:"limit,default=10" validate:"gte=1,lte=250"`
	Page  int `form:"page,default=1" validate:"gte=1"`
}

func (p Params) Normalized() Params {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 250 {
		p.Limit = 250
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

func (p Params) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.Limit
}

// Meta is the pagination envelope returned alongside list payloads.
type Meta struct {
	Total     int64 `json:"total"`
	PageCount int   `json:"pageCount"`
	PerPage   int   `json:"perPage"`
	Page      int   `json:"page"`
}

func BuildMeta(total int64, p Params) Meta {
	n := p.Normalized()
	return Meta{
		Total:     total,
		PageCount: int(math.Ceil(float64(total) / float64(n.Limit))),
		PerPage:   n.Limit,
		Page:      n.Page,
	}
}
