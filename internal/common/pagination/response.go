package pagination

// Page is one page of T as returned by the use cases.
type Page[T any] struct {
	Items      []T
	Pagination Metadata
}

// NewPage builds the page for params from the items and total count.
func NewPage[T any](items []T, params Params, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Pagination: OffsetStrategy{}.BuildMetadata(params, total)}
}

// Response is a generic paginated response wrapper.
//
//	response := pagination.NewResponse(dtos, page.Pagination)
type Response[T any] struct {
	Data       []T      `json:"data"`       // Array of data items for the current page
	Pagination Metadata `json:"pagination"` // Pagination metadata (total, page, limit, etc.)
}

// NewResponse creates a new paginated response with data and metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
