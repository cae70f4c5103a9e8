package query

import "context"

// Create runs a list request against src and packages the requested page.
//
// The order is fixed: validate the window and both columns, filter, count the
// filtered set, order the filtered set, cut the window, fetch. Validation
// failures and source errors are returned as is with a nil Result.
// The count and the fetch are separate round trips; a concurrent write between
// them can leave TotalCount slightly stale and that is accepted.
func Create[T any](ctx context.Context, src Source[T], schema *Schema[T], p Params) (*Result[T], error) {
	window, err := NewWindow(p.PageIndex, p.PageSize)
	if err != nil {
		return nil, err
	}
	order, err := BuildSort(schema, p.SortColumn, p.SortOrder)
	if err != nil {
		return nil, err
	}
	filter, err := BuildFilter(schema, p.FilterColumn, p.FilterQuery)
	if err != nil {
		return nil, err
	}

	if filter != nil {
		src = src.Where(*filter)
	}
	total, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}

	sortOrder := p.SortOrder
	if order != nil {
		src = src.OrderBy(*order)
		sortOrder = order.Direction.String()
	}

	data, err := src.Fetch(ctx, window)
	if err != nil {
		return nil, err
	}
	if len(data) > window.Limit {
		data = data[:window.Limit]
	}

	return newResult(data, total, p.PageIndex, p.PageSize, p.SortColumn, sortOrder, p.FilterColumn, p.FilterQuery), nil
}
