package pagination

// QueryParams represents the calculated query parameters for database queries.
type QueryParams struct {
	Offset int
	Limit  int
}

// OffsetStrategy implements offset-based pagination.
type OffsetStrategy struct{}

// CalculateQuery calculates offset and limit for params.
func (OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

// BuildMetadata constructs the metadata returned with a page.
func (OffsetStrategy) BuildMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
		HasNext:    int64(params.Page)*int64(params.Limit) < total,
		HasPrev:    params.Page > 1,
	}
}
