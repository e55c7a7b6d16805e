package registrykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditLogFilter(t *testing.T) {
	f := NewAuditLogFilter().
		WithActor("alice").
		WithSubject("bob").
		WithEntity(3).
		WithTopic(TopicRole).
		WithAction(EventActionSet).
		WithTimeRange(10, 20).
		WithPagination(5, 15)

	assert.Equal(t, AuditLogFilter{
		Actor:    "alice",
		Subject:  "bob",
		EntityID: 3,
		Topic:    TopicRole,
		Action:   EventActionSet,
		Since:    10,
		Until:    20,
		Limit:    5,
		Offset:   15,
	}, f)

	assert.Equal(t, 100, NewAuditLogFilter().Limit)
	assert.Equal(t, 7, NewAuditLogFilter().WithLimit(7).Limit)
}

func TestAuditLogFilter_BuildersDoNotShareState(t *testing.T) {
	base := NewAuditLogFilter()
	_ = base.WithActor("alice")
	assert.Equal(t, Address(""), base.Actor)
}
