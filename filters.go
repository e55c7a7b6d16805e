package registrykit

// AuditLogFilter provides options for filtering audit log queries.
type AuditLogFilter struct {
	// Filter by the address that performed the action
	Actor Address

	// Filter by the address acted upon (role target, new owner)
	Subject Address

	// Filter by entity ID; zero matches every row
	EntityID uint32

	// Filter by topic and action
	Topic  Topic
	Action Symbol

	// Filter by ledger time range, inclusive; zero leaves the bound open
	Since uint64
	Until uint64

	// Pagination
	Limit  int
	Offset int
}

// NewAuditLogFilter creates a new AuditLogFilter with default values.
func NewAuditLogFilter() AuditLogFilter {
	return AuditLogFilter{
		Limit: 100,
	}
}

// WithActor sets the actor filter.
func (f AuditLogFilter) WithActor(actor Address) AuditLogFilter {
	f.Actor = actor
	return f
}

// WithSubject sets the subject filter.
func (f AuditLogFilter) WithSubject(subject Address) AuditLogFilter {
	f.Subject = subject
	return f
}

// WithEntity sets the entity filter.
func (f AuditLogFilter) WithEntity(id uint32) AuditLogFilter {
	f.EntityID = id
	return f
}

// WithTopic sets the topic filter.
func (f AuditLogFilter) WithTopic(topic Topic) AuditLogFilter {
	f.Topic = topic
	return f
}

// WithAction sets the action filter.
func (f AuditLogFilter) WithAction(action Symbol) AuditLogFilter {
	f.Action = action
	return f
}

// WithTimeRange sets the ledger time range filter.
func (f AuditLogFilter) WithTimeRange(since, until uint64) AuditLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithLimit sets the limit for results.
func (f AuditLogFilter) WithLimit(limit int) AuditLogFilter {
	f.Limit = limit
	return f
}

// WithPagination sets both limit and offset.
func (f AuditLogFilter) WithPagination(limit, offset int) AuditLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
