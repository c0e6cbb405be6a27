package config

import (
	"fmt"
	"net"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	IsDataMocked  bool   `json:"isDataMocked"`
	ListenAddress string `json:"listenAddress" default:":8080"`
	MockDataDir   string `json:"mockDataDir" default:"public/mock-data"`
	// GraphQLURL defaults to the /api/graphql route of this service.
	GraphQLURL    string `json:"graphqlUrl"`
	LogDebug      bool   `json:"logDebug"`
	LogLevel      string `json:"logLevel" default:"info"`
	Github        struct {
		Org   string `json:"org"`
		Ent   string `json:"ent"`
		Scope string `json:"scope" default:"org"`
		// Token is used only when the inbound request carries no Authorization header.
		Token           string `json:"token"`
		APIBase         string `json:"apiBase" default:"https://api.github.com"`
		GraphQLUpstream string `json:"graphqlUpstream" default:"https://api.github.com/graphql"`
	} `json:"github"`
}

const appConfPrefix = "CSA"

var validScopes = map[string]bool{
	"team": true,
	"org":  true,
	"ent":  true,
}

// Load reads an optional .env file and then the CSA_* environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var conf Config
	if err := envconfig.Process(appConfPrefix, &conf); err != nil {
		return conf, fmt.Errorf("processing environment: %w", err)
	}

	if conf.GraphQLURL == "" {
		url, err := loopbackGraphQLURL(conf.ListenAddress)
		if err != nil {
			return conf, err
		}
		conf.GraphQLURL = url
	}

	return conf, conf.Validate()
}

func (c Config) Validate() error {
	if !validScopes[c.Github.Scope] {
		return fmt.Errorf("invalid github scope %q: must be one of team, org, ent", c.Github.Scope)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func loopbackGraphQLURL(listenAddress string) (string, error) {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", listenAddress, err)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/api/graphql", nil
}
