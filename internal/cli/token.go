package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/security"
)

type TokenCmd struct {
	User      string        `help:"User id to embed in the token." required:""`
	TTL       time.Duration `name:"ttl" help:"Token lifetime." default:"24h"`
	SecretKey string        `name:"secret-key" help:"Signing secret." env:"SECRET_KEY"`
}

func (cmd *TokenCmd) Run(ctx *Context) error {
	secret, err := config.ResolveSecretKey(cmd.SecretKey)
	if err != nil {
		return err
	}

	token, err := security.IssueToken([]byte(secret), cmd.User, cmd.TTL, calendar.SystemClock{}.Now())
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(ctx.Stdout, token)
	return nil
}

type SecretCmd struct {
	Length int `help:"Secret length, at least 32." default:"48"`
}

func (cmd *SecretCmd) Run(ctx *Context) error {
	secret, err := security.GenerateSecretKey(cmd.Length)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(ctx.Stdout, secret)
	return nil
}
