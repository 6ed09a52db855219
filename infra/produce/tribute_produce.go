package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TributeExchange          = "tribute.exchange"
	TributeCreatedQueue      = "tribute.created"
	TributeCreatedRoutingKey = "tribute.created"
)

type TributeService struct {
	channel *amqp.Channel
}

type TributeCreatedMessage struct {
	MemorialID   string `json:"memorial_id"`
	MemorialSlug string `json:"memorial_slug"`
	AuthorName   string `json:"author_name"`
	Timestamp    int64  `json:"timestamp"`
}

func InitTributeService(channel *amqp.Channel) *TributeService {
	service := &TributeService{
		channel: channel,
	}

	// Declare exchange
	err := channel.ExchangeDeclare(
		TributeExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Tribute exchange: " + err.Error())
	}

	// Declare tribute created queue
	_, err = channel.QueueDeclare(
		TributeCreatedQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Tribute created queue: " + err.Error())
	}

	// Bind queue to exchange
	err = channel.QueueBind(
		TributeCreatedQueue,
		TributeCreatedRoutingKey,
		TributeExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Tribute created queue: " + err.Error())
	}

	return service
}

func (s *TributeService) PublishTributeCreated(ctx context.Context, memorialID, memorialSlug, authorName string) error {
	message := TributeCreatedMessage{
		MemorialID:   memorialID,
		MemorialSlug: memorialSlug,
		AuthorName:   authorName,
		Timestamp:    time.Now().Unix(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		TributeExchange,
		TributeCreatedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
