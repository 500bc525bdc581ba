package notify

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент отправки WhatsApp уведомлений через Twilio
// Все отправки best-effort: ошибка уведомления никогда не ломает запись
type Client struct {
	api  *twilio.RestClient
	from string
	log  Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(accountSID, authToken, from string, log Logger) *Client {
	return &Client{
		api: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log,
	}
}

// SendAppointmentConfirmation отправляет пациенту подтверждение записи
func (c *Client) SendAppointmentConfirmation(conf AppointmentConfirmation) error {
	to, err := whatsappAddress(conf.PatientPhone)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hi %s! Your appointment with %s is booked for %s at %s. Reference: %s. We will contact you once the dentist confirms.",
		conf.PatientName, conf.DentistName, conf.Date, conf.Time, conf.Code,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	if _, err := c.api.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("SendAppointmentConfirmation: message sent to %s for appointment %s", to, conf.Code)
	return nil
}

// whatsappAddress приводит телефон к адресу Twilio WhatsApp канала
func whatsappAddress(phone string) (string, error) {
	p := strings.TrimSpace(phone)
	if p == "" {
		return "", ErrInvalidRecipient
	}
	if strings.HasPrefix(p, "whatsapp:") {
		return p, nil
	}
	if !strings.HasPrefix(p, "+") {
		p = "+" + p
	}
	return "whatsapp:" + p, nil
}
