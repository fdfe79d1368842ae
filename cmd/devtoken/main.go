// Command devtoken prints a signed access token for a learner, for use
// against a local server:
//
//	curl -H "Authorization: Bearer $(go run ./cmd/devtoken -user <uuid>)" localhost:8080/api/contacts
//
// It reads the same LUMINA_AUTH_* settings as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/phrazzld/lumina-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	user := fs.String("user", "", "learner UUID to issue the token for (random when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID := uuid.New()
	if *user != "" {
		parsed, err := uuid.Parse(*user)
		if err != nil {
			return fmt.Errorf("invalid -user: %w", err)
		}
		userID = parsed
	}

	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}
	return issue(*cfg, userID, out)
}

func issue(cfg config.AuthConfig, userID uuid.UUID, out io.Writer) error {
	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}
	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
