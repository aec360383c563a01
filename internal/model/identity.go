package model

// User identifies who paid a shared expense.
type User struct {
	Name  string
	Email string
	ID    int64
}

// Group collects users who share expenses.
type Group struct {
	Name string
	ID   int64
}

// GroupMember links a user to a group. The (UserID, GroupID) pair is
// unique.
type GroupMember struct {
	ID      int64
	UserID  int64
	GroupID int64
}
