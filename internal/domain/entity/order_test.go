package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.OrderStatusPendingPayment, entity.OrderStatusProcessing, true},
		{entity.OrderStatusPendingPayment, entity.OrderStatusCancelled, true},
		{entity.OrderStatusProcessing, entity.OrderStatusShipped, true},
		{entity.OrderStatusProcessing, entity.OrderStatusCancelled, true},
		{entity.OrderStatusShipped, entity.OrderStatusCompleted, true},

		{entity.OrderStatusPendingPayment, entity.OrderStatusShipped, false},
		{entity.OrderStatusShipped, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCompleted, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusProcessing, false},
		{entity.OrderStatusCancelled, entity.OrderStatusCancelled, false},
		{"", entity.OrderStatusProcessing, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.CanTransition(c.from, c.to),
			"transición %s -> %s", c.from, c.to)
	}
}
