package myconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"

	"github.com/MarcGrol/pharmacare/lib/mylocalstorage"
)

type WhatsApp struct {
	APIURL        string `envconfig:"WHATSAPP_API_URL" default:"https://graph.facebook.com/v19.0"`
	PhoneNumberID string `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	Token         string `envconfig:"WHATSAPP_TOKEN"`
}

type SMTP struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
	To       string `envconfig:"SMTP_TO"`
}

type Config struct {
	Environment        string        `envconfig:"ENVIRONMENT" default:"local"`
	Port               string        `envconfig:"PORT" default:"8080"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"INFO"`
	UploadDir          string        `envconfig:"UPLOAD_DIR" default:"uploads"`
	CatalogSeedFile    string        `envconfig:"CATALOG_SEED_FILE"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"2h"`
	Redis              mylocalstorage.RedisConfig
	WhatsApp           WhatsApp
	SMTP               SMTP
}

// Load reads an optional .env file, then the environment. Command-line flags win over both.
func Load(programName string, args []string) (Config, error) {
	cmdLine := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	envFile := cmdLine.String("env-file", ".env", "file with environment variables")
	port := cmdLine.String("port", "", "port to listen on (overrides PORT)")
	err := cmdLine.Parse(args)
	if err != nil {
		return Config{}, err
	}

	err = godotenv.Load(*envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading env-file %s: %s", *envFile, err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error processing environment: %s", err)
	}

	if *port != "" {
		cfg.Port = *port
	}

	return cfg, nil
}

func (c Config) WhatsAppConfigured() bool {
	return c.WhatsApp.APIURL != "" && c.WhatsApp.PhoneNumberID != ""
}

func (c Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.To != ""
}
