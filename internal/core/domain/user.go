package domain

// User represents an operator of the back office. The core components only
// reference users (createdBy, openedBy, closedBy); they never own user state.
type User struct {
	UserID   string `json:"userID"` // Primary Key (UUID)
	Username string `json:"username"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
