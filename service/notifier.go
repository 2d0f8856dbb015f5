package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"gopkg.in/gomail.v2"

	"github.com/TanmaySingh007/StayFinder/domain"
)

var (
	notificationServiceHost = os.Getenv("NOTIFICATION_SERVICE_HOST")
	notificationServicePort = os.Getenv("NOTIFICATION_SERVICE_PORT")
	smtpServer              = os.Getenv("SMTP_AUTH_ADDRESS")
	smtpServerPort, _       = strconv.Atoi(os.Getenv("SMTP_AUTH_PORT"))
	smtpEmail               = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword            = os.Getenv("SMTP_AUTH_PASSWORD")
)

// notificationClient bounds the outbound call so a hung collaborator cannot
// stall the caller past the breaker's own timeout.
var notificationClient = &http.Client{Timeout: 10 * time.Second}

// Notifier delivers the booking confirmation to the outside world. The
// booking is already committed when it is called; a delivery failure never
// rolls the booking back.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking, listing *domain.Listing) error
}

// HTTPNotifier pushes confirmations to the notification service. A circuit
// breaker keeps a flapping collaborator from stalling the booking flow.
type HTTPNotifier struct {
	logger *logrus.Logger
	cb     *gobreaker.CircuitBreaker
	mail   *MailNotifier
}

func NewHTTPNotifier(logger *logrus.Logger, mail *MailNotifier) *HTTPNotifier {
	return &HTTPNotifier{
		logger: logger,
		cb:     CircuitBreaker("notificationService"),
		mail:   mail,
	}
}

func (n *HTTPNotifier) BookingConfirmed(ctx context.Context, booking *domain.Booking, listing *domain.Listing) error {
	_, breakerErr := n.cb.Execute(func() (interface{}, error) {
		requestBody := map[string]interface{}{
			"ByGuestId":   booking.GuestID,
			"ForHostId":   listing.Host.Name,
			"Description": fmt.Sprintf("Guest booked %s for %d nights, total %d", listing.Title, booking.Period.Nights(), booking.Total),
		}

		body, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("Error marshaling requestBody details JSON: %v", err)
		}

		notificationServiceEndpoint := fmt.Sprintf("http://%s:%s/", notificationServiceHost, notificationServicePort)
		notificationServiceRequest, _ := http.NewRequest("POST", notificationServiceEndpoint, bytes.NewReader(body))
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(notificationServiceRequest.Header))
		response, err := notificationClient.Do(notificationServiceRequest)
		if err != nil {
			return nil, fmt.Errorf("Error fetching notification service: %v", err)
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Notification service returned status %d", response.StatusCode)
		}

		return nil, nil
	})

	if breakerErr != nil {
		n.logger.Warnf("notification breaker: %v", breakerErr)
		return breakerErr
	}

	if n.mail != nil {
		if err := n.mail.BookingConfirmed(ctx, booking, listing); err != nil {
			n.logger.Warnf("confirmation mail failed: %v", err)
		}
	}

	return nil
}

// MailNotifier mails the price breakdown to the guest.
type MailNotifier struct {
	logger *logrus.Logger
}

func NewMailNotifier(logger *logrus.Logger) *MailNotifier {
	return &MailNotifier{logger: logger}
}

func (m *MailNotifier) BookingConfirmed(ctx context.Context, booking *domain.Booking, listing *domain.Listing) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", booking.GuestID)
	message.SetHeader("Subject", "Your StayFinder booking is confirmed")

	bodyString := fmt.Sprintf("Booking %s for %s is confirmed.\n%d nights x $%d = $%d\nService fee: $%d\nTotal: $%d",
		booking.Reference, listing.Title, booking.Period.Nights(), listing.Price,
		booking.Subtotal, booking.ServiceFee, booking.Total)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)

	if err := client.DialAndSend(message); err != nil {
		m.logger.Errorf("failed to send confirmation mail: %s", err)
		return err
	}

	return nil
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}
