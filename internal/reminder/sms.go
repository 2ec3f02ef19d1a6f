package reminder

import (
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/odontosys/clinic-api/internal/config"
)

// SMSSender abstrai o envio de SMS de lembrete.
type SMSSender interface {
	Send(to string, body string) error
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender devolve o sender Twilio quando as credenciais existem,
// senão um stub que apenas loga.
func NewSMSSender(cfg *config.Config) SMSSender {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return StubSender{}
	}

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
}

func (s *TwilioSender) Send(to string, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

type StubSender struct{}

func (StubSender) Send(to string, body string) error {
	log.Printf("sms sender not configured, skipping reminder to %s", to)
	return nil
}
