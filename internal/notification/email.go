package notification

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// EmailSender delivers customer emails.
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, to, customerName string, amount decimal.Decimal, orderReference string, products []events.PurchasedProduct) error
	SendPaymentConfirmation(ctx context.Context, to, customerName string, amount decimal.Decimal, orderReference string) error
}

const (
	orderConfirmationTemplate   = "order-confirmation.html"
	paymentConfirmationTemplate = "payment-confirmation.html"

	orderConfirmationSubject   = "Order confirmation"
	paymentConfirmationSubject = "Payment successfully processed"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type orderEmail struct {
	CustomerName   string
	OrderReference string
	TotalAmount    decimal.Decimal
	Products       []events.PurchasedProduct
}

type paymentEmail struct {
	CustomerName   string
	OrderReference string
	Amount         decimal.Decimal
}

// mailSender is the part of *mail.Client used to deliver messages.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPConfig configures SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender renders the HTML templates and sends them over SMTP.
type SMTPSender struct {
	client mailSender
	from   string
	logger observability.Logger
}

func NewSMTPSender(cfg SMTPConfig, logger observability.Logger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}
	return newSender(client, cfg.From, logger), nil
}

func newSender(client mailSender, from string, logger observability.Logger) *SMTPSender {
	return &SMTPSender{client: client, from: from, logger: logger}
}

func (s *SMTPSender) SendOrderConfirmation(ctx context.Context, to, customerName string, amount decimal.Decimal, orderReference string, products []events.PurchasedProduct) error {
	return s.send(ctx, to, orderConfirmationSubject, orderConfirmationTemplate, orderEmail{
		CustomerName:   customerName,
		OrderReference: orderReference,
		TotalAmount:    amount,
		Products:       products,
	})
}

func (s *SMTPSender) SendPaymentConfirmation(ctx context.Context, to, customerName string, amount decimal.Decimal, orderReference string) error {
	return s.send(ctx, to, paymentConfirmationSubject, paymentConfirmationTemplate, paymentEmail{
		CustomerName:   customerName,
		OrderReference: orderReference,
		Amount:         amount,
	})
}

func (s *SMTPSender) send(ctx context.Context, to, subject, templateName string, data any) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	if err := msg.SetBodyHTMLTemplate(templates.Lookup(templateName), data); err != nil {
		return fmt.Errorf("rendering %s: %w", templateName, err)
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending %q email: %w", subject, err)
	}
	s.logger.Info("📧 Email sent", zap.String("to", to), zap.String("template", templateName))
	return nil
}
