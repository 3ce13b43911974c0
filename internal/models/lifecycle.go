package models

import "time"

type LifecycleState int

const (
	StateActive LifecycleState = iota
	StateDeleted
)

func (s LifecycleState) String() string {
	if s == StateDeleted {
		return "deleted"
	}
	return "active"
}

// Lifecycle is either Active or Deleted at a point in time. The zero value is Active.
type Lifecycle struct {
	state     LifecycleState
	deletedAt time.Time
}

func Active() Lifecycle {
	return Lifecycle{}
}

func DeletedAt(at time.Time) Lifecycle {
	return Lifecycle{state: StateDeleted, deletedAt: at}
}

func (l Lifecycle) State() LifecycleState {
	return l.state
}

func (l Lifecycle) IsDeleted() bool {
	return l.state == StateDeleted
}

// DeletedAt returns the deletion time and true for the Deleted state.
func (l Lifecycle) DeletedAt() (time.Time, bool) {
	if l.state != StateDeleted {
		return time.Time{}, false
	}
	return l.deletedAt, true
}

func (l Lifecycle) wire() *time.Time {
	if l.state != StateDeleted {
		return nil
	}
	at := l.deletedAt
	return &at
}

func lifecycleFromWire(at *time.Time) Lifecycle {
	if at == nil {
		return Active()
	}
	return DeletedAt(*at)
}
