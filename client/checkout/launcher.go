package checkout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultPollInterval = 3 * time.Second

	orderStatusPaid       = "PAID"
	orderStatusExpired    = "EXPIRED"
	orderStatusTerminated = "TERMINATED"
)

// OrderFetcher reads the current state of a provider order.
type OrderFetcher interface {
	GetOrder(ctx context.Context, orderID string) (Session, error)
}

// PollingLauncher prints the payment session for the user to complete in a
// browser and polls the order until it reaches a terminal state.
type PollingLauncher struct {
	orders   OrderFetcher
	out      io.Writer
	interval time.Duration
}

func NewPollingLauncher(orders OrderFetcher, out io.Writer) *PollingLauncher {
	if out == nil {
		out = os.Stdout
	}

	return &PollingLauncher{
		orders:   orders,
		out:      out,
		interval: DefaultPollInterval,
	}
}

func (l *PollingLauncher) WithInterval(interval time.Duration) *PollingLauncher {
	l.interval = interval

	return l
}

func (l *PollingLauncher) Launch(ctx context.Context, session Session) (Result, error) {
	fmt.Fprintf(l.out, "Complete payment for order %s using session %s\n", session.OrderID, session.PaymentSessionID)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		order, err := l.orders.GetOrder(ctx, session.OrderID)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}

			log.Warn().Err(err).Str("order_id", session.OrderID).Msg("failed to poll order, retrying")

			continue
		}

		switch strings.ToUpper(order.OrderStatus) {
		case orderStatusPaid:
			return ResultSuccess, nil
		case orderStatusExpired, orderStatusTerminated:
			return ResultFailure, nil
		}
	}
}
