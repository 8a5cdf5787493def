package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Server struct {
			Host               string
			ShutdownTimeout    time.Duration
			JWTExpirationDelta time.Duration
		}

		Seed struct {
			AdviserName     string
			AdviserPassword string
		}

		Email struct {
			DefaultFrom    string
			SendgridApiKey string
			AdviserAddress string
		}
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "SayNoToRetake")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secretKey", "k1t$-9oq+wt(2zr!u8pdf4=ab0n_7y%3e^m)vs6hcx*ljg5")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", ":8080")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 12*time.Hour)
	conf.SetDefault("seed.adviserName", "Nursat")
	conf.SetDefault("seed.adviserPassword", "SayNo")
	conf.SetDefault("email.defaultFrom", "SayNoToRetake <noreply@localhost>")
	conf.SetDefault("email.sendgridApiKey", "")
	conf.SetDefault("email.adviserAddress", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("server.host")
	c.Server.ShutdownTimeout = conf.GetDuration("server.shutdownTimeout")
	c.Server.JWTExpirationDelta = conf.GetDuration("server.jwtExpirationDelta")
	c.Seed.AdviserName = conf.GetString("seed.adviserName")
	c.Seed.AdviserPassword = conf.GetString("seed.adviserPassword")
	c.Email.DefaultFrom = conf.GetString("email.defaultFrom")
	c.Email.SendgridApiKey = conf.GetString("email.sendgridApiKey")
	c.Email.AdviserAddress = conf.GetString("email.adviserAddress")
	return c
}

// DefaultFromEmail parses Email.DefaultFrom, falling back to a bare localhost address.
func (c *Config) DefaultFromEmail() mail.Address {
	if addr, err := mail.ParseAddress(c.Email.DefaultFrom); err == nil {
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
}

// AdviserEmail returns the parsed Email.AdviserAddress; ok is false when it is unset or invalid.
func (c *Config) AdviserEmail() (addr mail.Address, ok bool) {
	if c.Email.AdviserAddress == "" {
		return mail.Address{}, false
	}
	parsed, err := mail.ParseAddress(c.Email.AdviserAddress)
	if err != nil {
		return mail.Address{}, false
	}
	return *parsed, true
}

// configDir is where the .env files live; CONFIG_DIR overrides the "config" folder of the working directory.
func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(wd, "config")
}
