// Command token mints a bearer token for a user id and role with the
// configured TOKEN_SYMMETRIC_KEY. Login lives outside this service; the tool
// exists for local development and smoke tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/nexus"
	"github.com/joefazee/sportsbook/internal/security"
	"github.com/joefazee/sportsbook/models"
)

type tokenConfig struct {
	Security security.Config
}

func main() {
	userID := flag.String("user", "", "user id")
	role := flag.String("role", string(models.RoleUser), "user, agent or owner")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*userID, models.Role(*role), *ttl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rawID string, role models.Role, ttl time.Duration) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid -user: %w", err)
	}
	if !role.IsValid() {
		return models.ErrInvalidRole
	}

	cfg := &tokenConfig{}
	if err := nexus.NewLoader().Load(cfg); err != nil {
		return err
	}

	maker, err := security.NewPasetoMaker(cfg.Security.SymmetricKey)
	if err != nil {
		return err
	}

	token, payload, err := maker.CreateToken(id, role, ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", payload.ExpiredAt.Format(time.RFC3339))
	return nil
}
