package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSender is the delivery contract the worker needs from the mail layer.
type EmailSender interface {
	SendOutreach(to, subject, htmlBody string) error
}

// Worker drains the send queue. It is fully decoupled from the database;
// everything it needs travels in the payload.
type Worker struct {
	Channel *amqp.Channel
	Mailer  EmailSender
}

func NewWorker(ch *amqp.Channel, mailer EmailSender) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload SendStepPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Step %d for %s via %s", payload.Step, payload.BusinessName, payload.Channel)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Delivery failed: %s", err)
				// No requeue: the job moves to the DLQ for inspection.
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Step %d delivered for %s", payload.Step, payload.BusinessName)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload SendStepPayload) error {
	switch payload.Channel {
	case "EMAIL":
		if payload.To == "" {
			log.Printf("⚠️ [WORKER] EMAIL job without address for %s, dropping", payload.BusinessName)
			return nil
		}
		return w.Mailer.SendOutreach(payload.To, payload.Subject, payload.Body)

	case "LINKEDIN":
		// DMs are sent by hand; the job exists so the touch shows up in logs.
		log.Printf("💼 [WORKER] LinkedIn touch logged for %s (step %d)", payload.BusinessName, payload.Step)
		return nil

	default:
		log.Printf("⚠️ [WORKER] Unknown channel %q, acking to drain", payload.Channel)
		return nil
	}
}
