package request

// PageParams are the from/size pagination query parameters shared by list endpoints.
// Pages are derived as page = from / size, so offsets snap to page boundaries.
type PageParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1"`
}

// LimitOffset converts the from/size pair into SQL LIMIT/OFFSET values.
func (p PageParams) LimitOffset() (limit, offset int) {
	page := p.From / p.Size
	return p.Size, page * p.Size
}
