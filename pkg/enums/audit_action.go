package enums

// AuditAction labels what an audit trail entry records.
type AuditAction string

const (
	AuditActionView   AuditAction = "view"
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionReport AuditAction = "report"
	AuditActionError  AuditAction = "error"
)

var validAuditActions = []AuditAction{
	AuditActionView,
	AuditActionCreate,
	AuditActionUpdate,
	AuditActionDelete,
	AuditActionReport,
	AuditActionError,
}

// IsValid reports whether the value matches a known audit action.
func (a AuditAction) IsValid() bool {
	for _, candidate := range validAuditActions {
		if candidate == a {
			return true
		}
	}
	return false
}
