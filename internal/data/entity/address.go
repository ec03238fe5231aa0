package entity

// Address rows are shared: users and listings reference them by ID, and the
// resolver reuses an existing row for an identical (street, city, postal)
// triple instead of inserting a duplicate.
type Address struct {
	BaseSimple
	StreetName string `db:"street_name"`
	City       string `db:"city"`
	PostalCode string `db:"postal_code"`
}
