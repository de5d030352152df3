package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/mailer"
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/notification/model/dto"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"html/template"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateLayout = "templates/layout.html"

	kindConfirmation = "confirmation"
	kindCancellation = "cancellation"
	kindQRCode       = "qrcode"
)

var templates = map[string]*template.Template{
	kindConfirmation: parse(kindConfirmation),
	kindCancellation: parse(kindCancellation),
	kindQRCode:       parse(kindQRCode),
}

func parse(kind string) *template.Template {
	return template.Must(template.ParseFS(templateFS, templateLayout, "templates/"+kind+".html"))
}

type Notification interface {
	SendConfirmation(ctx context.Context, booking dto.BookingSnapshot) error
	SendCancellation(ctx context.Context, booking dto.BookingSnapshot) error
	SendQRCode(ctx context.Context, booking dto.BookingSnapshot, payload string) error
}

type serviceImpl struct {
	mailer mailer.Mailer
	brand  string
	otel   otel.Otel
}

func New(mailer mailer.Mailer, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		mailer: mailer,
		brand:  cfg.Email.FromName,
		otel:   otel,
	}
}

type view struct {
	Brand   string
	Title   string
	Booking dto.BookingSnapshot
	Payload string
}

func (s *serviceImpl) SendConfirmation(ctx context.Context, booking dto.BookingSnapshot) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.SendConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.send(ctx, kindConfirmation, "Booking Confirmation - "+booking.BookingID, booking, constant.Empty)
}

func (s *serviceImpl) SendCancellation(ctx context.Context, booking dto.BookingSnapshot) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.SendCancellation")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.send(ctx, kindCancellation, "Booking Cancelled - "+booking.BookingID, booking, constant.Empty)
}

func (s *serviceImpl) SendQRCode(ctx context.Context, booking dto.BookingSnapshot, payload string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.SendQRCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.send(ctx, kindQRCode, "Your Check-in Code - "+booking.BookingID, booking, payload)
}

func (s *serviceImpl) send(ctx context.Context, kind, subject string, booking dto.BookingSnapshot, payload string) error {
	if !booking.HasRecipient() {
		return failure.BadRequestFromString("booking has no guest email") // nolint:wrapcheck
	}

	var body bytes.Buffer

	err := templates[kind].ExecuteTemplate(&body, "layout", view{
		Brand:   s.brand,
		Title:   subject,
		Booking: booking,
		Payload: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("template", kind).Msg("failed to render email")

		return fmt.Errorf("failed to render %s email: %w", kind, err)
	}

	err = s.mailer.Send(ctx, mailer.Message{
		ToEmail: booking.GuestEmail,
		ToName:  booking.GuestName,
		Subject: subject,
		HTML:    body.String(),
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.BookingID).Str("template", kind).Msg("failed to send email")

		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	log.Info().Str("booking_id", booking.BookingID).Str("template", kind).Msg("email sent")

	return nil
}
