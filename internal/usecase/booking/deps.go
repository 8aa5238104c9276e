package booking

import (
	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	"github.com/alnourclinic/clinic-scheduler/internal/notify"
)

// AuditSink receives audit events; satisfied by *audit.Dispatcher.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

// NotifySink receives status-change events; satisfied by
// *notify.Dispatcher.
type NotifySink interface {
	Dispatch(ev notify.StatusChanged)
}
