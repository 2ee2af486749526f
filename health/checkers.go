package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/hivedmq/hived-go/internal/rabbitmq"
)

// BrokerChecker verifies the broker is reachable by dialing a fresh
// connection and opening a channel on it.
type BrokerChecker struct {
	dialer rabbitmq.Dialer
	logger *slog.Logger
}

// NewBrokerChecker creates a new broker health checker
func NewBrokerChecker(dialer rabbitmq.Dialer, logger *slog.Logger) *BrokerChecker {
	return &BrokerChecker{
		dialer: dialer,
		logger: logger,
	}
}

func (c *BrokerChecker) Name() string {
	return "broker"
}

func (c *BrokerChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name(),
		Timestamp: start,
		Details:   make(map[string]interface{}),
	}

	conn, err := c.dialer.Dial()
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = "Failed to reach broker"
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = "Failed to open channel"
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}
	ch.Close()

	result.Status = StatusHealthy
	result.Message = "Broker is reachable"
	result.Duration = time.Since(start)
	result.Details["response_time_ms"] = result.Duration.Milliseconds()

	return result
}
