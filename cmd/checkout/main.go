package main

import (
	"context"
	"errors"
	"flag"
	"hotelbooker/client/checkout"
	"hotelbooker/shared/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	var (
		apiURL   = flag.String("api", "http://localhost:8080", "booking API base URL")
		booking  = flag.String("booking", "", "booking number, used as the order id")
		amount   = flag.Float64("amount", 0, "amount to charge")
		currency = flag.String("currency", "INR", "ISO currency code")
		name     = flag.String("name", "", "guest name")
		email    = flag.String("email", "", "guest email")
		phone    = flag.String("phone", "", "guest phone number")
		timeout  = flag.Duration("timeout", checkout.DefaultTimeout, "how long to wait for the payment")
		interval = flag.Duration("poll", checkout.DefaultPollInterval, "order polling interval")
	)

	flag.Parse()

	if *booking == "" || *amount <= 0 || *phone == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := checkout.New(*apiURL,
		checkout.WithTimeout(*timeout),
		checkout.WithPollInterval(*interval),
	)

	outcome, err := client.Pay(ctx, checkout.PaymentRequest{
		OrderID:  *booking,
		Amount:   *amount,
		Currency: *currency,
		Customer: checkout.Customer{
			ID:    "guest_" + *booking,
			Name:  *name,
			Email: *email,
			Phone: *phone,
		},
		Note: *booking,
	})

	switch {
	case err == nil:
		log.Info().Str("order_id", outcome.OrderID).Msg("payment completed")
	case errors.Is(err, checkout.ErrPaymentFailed), errors.Is(err, checkout.ErrPaymentCancelled):
		log.Warn().Err(err).Str("order_id", outcome.OrderID).Msg("payment did not complete")
	default:
		log.Fatal().Err(err).Msg("checkout failed")
	}

	reportCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.ReportPayment(reportCtx, *booking, outcome, ""); err != nil {
		log.Fatal().Err(err).Msg("failed to report payment outcome")
	}

	if !outcome.Success {
		os.Exit(1)
	}
}
