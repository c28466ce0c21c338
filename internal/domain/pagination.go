package domain

// PaginationParams holds skip/limit pagination parameters for list queries.
type PaginationParams struct {
	Skip  int
	Limit int
}

// Page returns the 1-based page number the skip/limit window falls on.
// Formula: Skip / Limit + 1.
func (p PaginationParams) Page() int {
	if p.Limit < 1 {
		return 1
	}
	return p.Skip/p.Limit + 1
}
