package configs

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type ENV struct {
	Port              string `envconfig:"APP_PORT" default:":8080"`
	DataDir           string `envconfig:"DATA_DIR" default:"instance"`
	AdminUsername     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD" default:"admin"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	AppAuthKey        string `envconfig:"APP_AUTH_KEY"`
	AppEncKey         string `envconfig:"APP_ENC_KEY"`
	AppEnv            string `envconfig:"APP_ENV" default:"development"`
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	var env ENV
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalf("Failed to process environment configuration: %v", err)
	}

	return env
}
