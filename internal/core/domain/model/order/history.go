package order

import (
	"time"

	"pressing/internal/core/domain/model/identity"
)

// HistoryEntry records one status change. Entries are only ever appended.
type HistoryEntry struct {
	status    Status
	changedBy identity.UserRef
	changedAt time.Time
}

func RestoreHistoryEntry(status Status, changedBy identity.UserRef, changedAt time.Time) HistoryEntry {
	return HistoryEntry{
		status:    status,
		changedBy: changedBy,
		changedAt: changedAt,
	}
}

func (h HistoryEntry) Status() Status {
	return h.status
}

func (h HistoryEntry) ChangedBy() identity.UserRef {
	return h.changedBy
}

func (h HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}
