// Package ports defines the remote match log interface.
package ports

import (
	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// MatchLogger appends finished-match records to a remote, best-effort log.
//
// LogMatch is fire-and-forget: it must never block match completion and
// returns nothing; failures are the implementation's problem to swallow.
type MatchLogger interface {
	LogMatch(record domain.HistoryRecord, p1Name, p2Name string)
}
