package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SendStepPayload is one outreach touch ready for delivery. EMAIL jobs are
// sent by the worker over SMTP; LINKEDIN jobs only record the touch since
// DMs go out manually.
type SendStepPayload struct {
	ProspectID   string `json:"prospect_id"`
	CampaignID   string `json:"campaign_id"`
	Step         int    `json:"step"`
	Channel      string `json:"channel"` // EMAIL or LINKEDIN
	To           string `json:"to"`
	BusinessName string `json:"business_name"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSendStep(ctx context.Context, payload SendStepPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)

	if err != nil {
		return fmt.Errorf("publish send job: %v", err)
	}

	return nil
}
