package store

// AssetQuery holds the optional filters for an asset search. Zero values mean
// "no filter"; all present filters are combined with AND.
type AssetQuery struct {
	// Text matches as a substring against asset code, name, the assigned
	// user's name and the remark.
	Text       string
	CategoryID *int64
	Status     string
}

// EmployeeQuery holds the optional filters for an employee search.
type EmployeeQuery struct {
	Text         string
	DepartmentID *int64
}

// ChangeLogQuery holds the optional filters for a change-log search. Start and
// End are YYYY-MM-DD dates; End is inclusive through the end of that day.
type ChangeLogQuery struct {
	Text  string
	Start string
	End   string
}
