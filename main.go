package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v\n", err)
	}

	// connect to database
	store, err := NewPostgresStore(config.DatabaseUrl)
	if err != nil {
		log.Fatalf("Unable to initialize store: %v\n", err)
	}
	defer store.Close()

	// the event publisher is optional; without a broker the ledger still works
	var publisher EventPublisher = NoopPublisher{}
	if config.AmqpUrl != "" {
		rabbit, err := NewRabbitMQPublisher(config.AmqpUrl)
		if err != nil {
			log.Fatalf("Unable to connect to RabbitMQ: %v\n", err)
		}
		publisher = rabbit
	}
	defer publisher.Close()

	tokens := NewTokenService(config.JwtSecret, config.TokenTtl)
	accounts := NewAccountManager(store)
	ledger := NewLedgerManager(store, publisher)

	// create http handlers and start the server
	h := NewHandler(accounts, ledger, tokens, config.Development)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{config.CorsOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	RegisterRoutes(mux, h)

	log.Printf("Starting server on :%s", config.Port)
	if err := http.ListenAndServe(":"+config.Port, mux); err != nil {
		log.Fatalf("Server stopped: %v\n", err)
	}
}
