package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
)

func TestAuditServiceLogsPublishedEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	audit := NewAuditService(dispatcher, zap.New(core))
	audit.RegisterHandlers()

	publishEvent(context.Background(), dispatcher, events.Event{
		Type:    events.EventProductDeleted,
		Actor:   events.Actor{SubjectID: 7, Role: domain.RoleAdmin},
		Payload: events.ProductPayload{ProductID: 11, Code: "SKU-1"},
	})

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "product_deleted", fields["event_type"])
	require.Equal(t, int64(7), fields["subject_id"])
	require.NotEmpty(t, fields["event_id"])
}

func TestPublishEventFillsIDAndTimestamp(t *testing.T) {
	dispatcher := &recordingDispatcher{}

	publishEvent(context.Background(), dispatcher, events.Event{Type: events.EventUserCreated})

	recorded := dispatcher.recorded()
	require.Len(t, recorded, 1)
	require.NotEmpty(t, recorded[0].ID)
	require.False(t, recorded[0].Timestamp.IsZero())
}
