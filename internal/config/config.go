package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	DatabaseName   string
	RedisURL       string
	KafkaBrokers   string
	StripeSecret   string
	JaegerEndpoint string
	Port           string
}

func Load() *Config {
	// Best effort; production supplies real env vars.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "lifesure"
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	return &Config{
		MongoURI:       mongoURI,
		DatabaseName:   dbName,
		RedisURL:       os.Getenv("REDIS_URL"),
		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		StripeSecret:   os.Getenv("STRIPE_SECRET_KEY"),
		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
		Port:           port,
	}
}
