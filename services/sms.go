package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioTexter sends SMS messages through Twilio.
type TwilioTexter struct {
	api  messageCreator
	from string
}

func NewTwilioTexter(accountSID, authToken, from string) *TwilioTexter {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioTexter{api: client.Api, from: from}
}

// SendSMS delivers body to every number. It stops at the first failure.
func (t *TwilioTexter) SendSMS(ctx context.Context, body string, numbers []string) error {
	for _, to := range numbers {
		if err := ctx.Err(); err != nil {
			return err
		}
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(t.from)
		params.SetBody(body)

		resp, err := t.api.CreateMessage(params)
		if err != nil {
			return fmt.Errorf("send sms to %s: %w", to, err)
		}
		if resp.Sid != nil {
			log.Info().Str("messageSid", *resp.Sid).Msg("Sent SMS via Twilio")
		}
	}
	return nil
}
