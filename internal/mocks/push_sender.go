package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/service/push"
)

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, token string, msg push.Message) push.DeliveryOutcome {
	args := m.Called(ctx, token, msg)
	return args.Get(0).(push.DeliveryOutcome)
}
