package survey

import (
	"github.com/sirupsen/logrus"

	"github.com/microbian-systems/survey/log"
)

type Function string

const (
	FunctionCreate Function = "create"
	FunctionUpdate Function = "update"
	FunctionDelete Function = "delete"
)

// Audit records domain events. Implementations must never fail or block the
// operation that emits the event.
type Audit interface {
	Log(level log.Level, function Function, message string, payload any)
}

type auditLogger struct{}

// NewAuditLogger returns an Audit writing structured entries to the
// application logger.
func NewAuditLogger() Audit {
	return auditLogger{}
}

func (auditLogger) Log(level log.Level, function Function, message string, payload any) {
	log.Logger.
		WithFields(logrus.Fields{
			"function": function,
			"payload":  payload,
		}).
		Log(logrus.Level(level), message)
}
