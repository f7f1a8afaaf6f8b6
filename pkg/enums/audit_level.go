package enums

// AuditLevel grades the severity of an audit trail entry.
type AuditLevel string

const (
	AuditLevelInfo     AuditLevel = "info"
	AuditLevelWarning  AuditLevel = "warning"
	AuditLevelError    AuditLevel = "error"
	AuditLevelCritical AuditLevel = "critical"
)

var validAuditLevels = []AuditLevel{
	AuditLevelInfo,
	AuditLevelWarning,
	AuditLevelError,
	AuditLevelCritical,
}

// IsValid reports whether the value matches a known audit level.
func (l AuditLevel) IsValid() bool {
	for _, candidate := range validAuditLevels {
		if candidate == l {
			return true
		}
	}
	return false
}
