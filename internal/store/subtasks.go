package store

import (
	"sort"

	"github.com/emilianohg/launchtracker/internal/models"
)

// promoteSubtaskFields declares the sub-task columns of a launch persisted before
// they were declared, from the keys found across its sub-tasks.
func promoteSubtaskFields(l *models.Launch) {
	l.Normalize()
	declared := make(map[string]bool, len(l.SubtaskFields))
	for _, f := range l.SubtaskFields {
		declared[f.Name] = true
	}
	for _, st := range l.Subtasks {
		for _, key := range sortedKeys(st.Fields) {
			if !declared[key] {
				declared[key] = true
				l.SubtaskFields = append(l.SubtaskFields, models.SubtaskField{Name: key, Type: models.ColumnText})
			}
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func subtaskIndex(l *models.Launch, subtaskID string) int {
	for i := range l.Subtasks {
		if l.Subtasks[i].ID == subtaskID {
			return i
		}
	}
	return -1
}

// AddSubtask appends a sub-task with an empty value for every declared field.
func (s *LaunchStore) AddSubtask(launchID, name string) (models.SubTask, bool) {
	now := s.now()
	st := models.SubTask{
		ID:        newSubtaskID(now),
		Name:      name,
		CreatedAt: now,
		Fields:    map[string]string{},
	}
	ok := s.mutate(launchID, func(l *models.Launch) bool {
		for _, f := range l.SubtaskFields {
			st.Fields[f.Name] = ""
		}
		l.Subtasks = append(l.Subtasks, st)
		return true
	})
	return st.Clone(), ok
}

func (s *LaunchStore) RemoveSubtask(launchID, subtaskID string) {
	s.mutate(launchID, func(l *models.Launch) bool {
		i := subtaskIndex(l, subtaskID)
		if i < 0 {
			return false
		}
		l.Subtasks = append(l.Subtasks[:i], l.Subtasks[i+1:]...)
		return true
	})
}

func (s *LaunchStore) updateSubtask(launchID, subtaskID string, fn func(*models.SubTask)) {
	s.mutate(launchID, func(l *models.Launch) bool {
		i := subtaskIndex(l, subtaskID)
		if i < 0 {
			return false
		}
		fn(&l.Subtasks[i])
		return true
	})
}

func (s *LaunchStore) SetSubtaskCompleted(launchID, subtaskID string, completed bool) {
	s.updateSubtask(launchID, subtaskID, func(st *models.SubTask) { st.Completed = completed })
}

func (s *LaunchStore) SetSubtaskDueDate(launchID, subtaskID, dueDate string) {
	s.updateSubtask(launchID, subtaskID, func(st *models.SubTask) { st.DueDate = dueDate })
}

func (s *LaunchStore) RenameSubtask(launchID, subtaskID, name string) {
	s.updateSubtask(launchID, subtaskID, func(st *models.SubTask) { st.Name = name })
}

// SetSubtaskField stores value under a declared field. Undeclared fields are ignored.
func (s *LaunchStore) SetSubtaskField(launchID, subtaskID, field, value string) {
	s.mutate(launchID, func(l *models.Launch) bool {
		i := subtaskIndex(l, subtaskID)
		if i < 0 || !hasSubtaskField(l, field) {
			return false
		}
		l.Subtasks[i].Fields[field] = value
		return true
	})
}

func hasSubtaskField(l *models.Launch, name string) bool {
	for _, f := range l.SubtaskFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// AddSubtaskField declares a sub-task column and initializes it to "" in every sub-task.
// Declaring an existing name is a no-op.
func (s *LaunchStore) AddSubtaskField(launchID, name string, typ models.ColumnType) {
	if !typ.IsValid() {
		typ = models.ColumnText
	}
	s.mutate(launchID, func(l *models.Launch) bool {
		if name == "" || hasSubtaskField(l, name) {
			return false
		}
		l.SubtaskFields = append(l.SubtaskFields, models.SubtaskField{Name: name, Type: typ})
		for i := range l.Subtasks {
			l.Subtasks[i].Fields[name] = ""
		}
		return true
	})
}

// RemoveSubtaskField drops the declaration and the values stored under it.
func (s *LaunchStore) RemoveSubtaskField(launchID, name string) {
	s.mutate(launchID, func(l *models.Launch) bool {
		kept := l.SubtaskFields[:0]
		for _, f := range l.SubtaskFields {
			if f.Name != name {
				kept = append(kept, f)
			}
		}
		if len(kept) == len(l.SubtaskFields) {
			return false
		}
		l.SubtaskFields = kept
		for i := range l.Subtasks {
			delete(l.Subtasks[i].Fields, name)
		}
		return true
	})
}

// Progress returns the completed and total sub-task counts of a launch.
func Progress(l models.Launch) (done, total int) {
	for _, st := range l.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(l.Subtasks)
}
