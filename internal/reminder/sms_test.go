package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/clinic-api/internal/config"
)

func TestNewSMSSender_FallsBackToStubWithoutCredentials(t *testing.T) {
	sender := NewSMSSender(&config.Config{})
	assert.IsType(t, StubSender{}, sender)

	// credenciais parciais também não bastam
	sender = NewSMSSender(&config.Config{TwilioAccountSID: "AC123"})
	assert.IsType(t, StubSender{}, sender)

	sender = NewSMSSender(&config.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+15550000000",
	})
	assert.IsType(t, &TwilioSender{}, sender)
}

func TestStubSender_NeverFails(t *testing.T) {
	assert.NoError(t, StubSender{}.Send("+5511999990000", "lembrete"))
}
