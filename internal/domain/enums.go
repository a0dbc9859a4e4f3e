package domain

// CaseStatus is the workflow state of a case.
type CaseStatus string

const (
	CaseStatusActive CaseStatus = "ACTIVE"
	CaseStatusOnHold CaseStatus = "ON_HOLD"
	CaseStatusClosed CaseStatus = "CLOSED"
)

func (s CaseStatus) String() string { return string(s) }

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusActive, CaseStatusOnHold, CaseStatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no transition out of s exists.
func (s CaseStatus) IsTerminal() bool { return s == CaseStatusClosed }

// IsUpdatable reports whether s can be set through a regular update.
// CLOSED is only reachable through the closure gate.
func (s CaseStatus) IsUpdatable() bool {
	return s == CaseStatusActive || s == CaseStatusOnHold
}

// ItemStatus is the stored workflow status of a compliance item.
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "PENDING"
	ItemStatusDone    ItemStatus = "DONE"
)

func (s ItemStatus) String() string { return string(s) }

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusDone:
		return true
	}
	return false
}

// ObservedStatus is the status reported on read paths. OVERDUE is derived and never stored.
type ObservedStatus string

const (
	ObservedPending ObservedStatus = "PENDING"
	ObservedOverdue ObservedStatus = "OVERDUE"
	ObservedDone    ObservedStatus = "DONE"
)

func (s ObservedStatus) String() string { return string(s) }

// TaskStatus is the status of a case task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Role is the role claim carried by an authenticated principal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }
