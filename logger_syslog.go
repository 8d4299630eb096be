package rrcache

import (
	"strings"

	syslog "github.com/RackSec/srslog"
)

// SyslogLogger is a Logger that writes NOTICE-level lines to a syslog
// daemon. Debugf lines are dropped: syslog is for the lines operators
// need to see, not fine-grained tracing.
//
// Uses the same srslog.Dial-at-construction, Write-per-line idiom a
// query-forwarding syslog resolver would, retargeted to forward cache
// NOTICE lines instead of query/response records.
type SyslogLogger struct {
	writer *syslog.Writer
}

// NewSyslogLogger dials a syslog daemon and returns a Logger writing at
// priority (see ParsePriority for the accepted names). network/address
// empty dials the local syslog daemon; tag labels each line.
func NewSyslogLogger(network, address, tag, priority string) (Logger, error) {
	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	w, err := syslog.Dial(network, address, p, tag)
	if err != nil {
		return nil, err
	}
	return &SyslogLogger{writer: w}, nil
}

func (l *SyslogLogger) Notice(msg string) {
	l.writer.Write([]byte(msg)) //nolint:errcheck
}

func (l *SyslogLogger) Debugf(string, ...interface{}) {}

// ParsePriority maps a facility/severity name (e.g. "NOTICE", "LOCAL0")
// to a syslog.Priority, defaulting to LOG_NOTICE|LOG_DAEMON when empty.
func ParsePriority(name string) (syslog.Priority, error) {
	if name == "" {
		return syslog.LOG_NOTICE | syslog.LOG_DAEMON, nil
	}
	switch strings.ToUpper(name) {
	case "EMERG":
		return syslog.LOG_EMERG, nil
	case "ALERT":
		return syslog.LOG_ALERT, nil
	case "CRIT":
		return syslog.LOG_CRIT, nil
	case "ERR":
		return syslog.LOG_ERR, nil
	case "WARNING":
		return syslog.LOG_WARNING, nil
	case "NOTICE":
		return syslog.LOG_NOTICE, nil
	case "INFO":
		return syslog.LOG_INFO, nil
	case "DEBUG":
		return syslog.LOG_DEBUG, nil
	case "LOCAL0":
		return syslog.LOG_LOCAL0, nil
	case "LOCAL1":
		return syslog.LOG_LOCAL1, nil
	case "DAEMON":
		return syslog.LOG_DAEMON, nil
	default:
		return syslog.LOG_NOTICE | syslog.LOG_DAEMON, nil
	}
}
