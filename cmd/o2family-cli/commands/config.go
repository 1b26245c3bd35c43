package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jhutar/o2family-info-o-cisle/lib/configutil"
	"github.com/jhutar/o2family-info-o-cisle/lib/scrapers/selfcare"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// flag values win over config.json5; missing both is a usage error
func credentials() (string, string, error) {
	username := flagUsername
	password := flagPassword
	if username != "" && password != "" {
		return username, password, nil
	}

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	if username == "" {
		username = cfg.Username
	}
	if password == "" {
		password = cfg.Password
	}

	if username == "" || password == "" {
		return "", "", fmt.Errorf("missing credentials, pass --username and --password or provide a config.json5")
	}
	return username, password, nil
}

// login builds a portal client and authenticates it, returning the
// landing page body alongside for scanning
func login(ctx context.Context) (*selfcare.Client, []byte, error) {
	username, password, err := credentials()
	if err != nil {
		return nil, nil, err
	}

	client, err := selfcare.NewClient(ctx, selfcare.ClientOptions{})
	if err != nil {
		return nil, nil, err
	}
	landing, err := client.LoginUsernamePassword(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	return client, landing, nil
}
