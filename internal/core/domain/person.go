package domain

// Person is someone a record amount can be split with.
type Person struct {
	PersonID string `json:"personID"` // Primary Key (UUID)
	Name     string `json:"name"`
	AuditFields
}
