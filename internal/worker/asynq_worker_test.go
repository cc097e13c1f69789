package worker

import (
	"context"
	"testing"

	"github.com/delicute/delicute-api/internal/provider"
	"github.com/delicute/delicute-api/internal/queue"

	"github.com/hibiken/asynq"
)

func TestRegisterSkipsNilMux(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	// 不应 panic
	consumer.Register(nil)
}

func TestHandleOrderStatusEmailRejectsBadPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("{not json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleOrderStatusEmailSkipsZeroOrderID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleOrderTimeoutCancelSkipsZeroOrderID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleNotificationDispatchSkipsMissingService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskNotificationDispatch, []byte(`{"notification_id":12}`))
	if err := consumer.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("missing notification service should be skipped, got %v", err)
	}
}
