package main

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// EventPublisher announces recorded expenses to interested consumers
// (budgeting jobs, notification services). Publishing is best-effort: the
// ledger never fails a request over it.
type EventPublisher interface {
	PublishExpenseRecorded(e Expense) error
	Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishExpenseRecorded(Expense) error { return nil }

func (NoopPublisher) Close() {}

// RabbitMQPublisher is an implementation of EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQPublisher(rabbitMQURL string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(rabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	queue, err := ch.QueueDeclare(
		"expense-events", // Queue name
		true,             // Durable (survives RabbitMQ restarts)
		false,            // Auto-delete when unused
		false,            // Not exclusive to a single connection
		false,            // No-wait for confirmation
		nil,              // Additional queue arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQPublisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

// PublishExpenseRecorded sends the recorded expense to the queue as JSON.
func (p *RabbitMQPublisher) PublishExpenseRecorded(e Expense) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = p.channel.Publish(
		"",           // Default exchange (direct routing to a queue)
		p.queue.Name, // Queue name as the routing key
		false,        // Mandatory flag
		false,        // Immediate flag
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return err
	}

	log.Printf("Expense event published: %s", e.Id)
	return nil
}

// Close releases RabbitMQ resources
func (p *RabbitMQPublisher) Close() {
	p.channel.Close()
	p.conn.Close()
}
