package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"contractflow.backend/internal/config"
	"contractflow.backend/internal/domain/entities"
	"contractflow.backend/pkg/jwt"
)

type tokenRequest struct {
	id     string
	name   string
	role   string
	expiry time.Duration
}

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout, config.Load().JWT); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer, cfg config.JWTConfig) error {
	fs := flag.NewFlagSet("actor-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	req := tokenRequest{}
	fs.StringVar(&req.id, "id", "", "actor id recorded in history (required)")
	fs.StringVar(&req.name, "name", "", "actor display name (defaults to id)")
	fs.StringVar(&req.role, "role", string(entities.RoleAdmin), "role: admin, approver or signer")
	fs.DurationVar(&req.expiry, "expiry", cfg.AccessExpiry, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateInputs(&req); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.NewJWTService(cfg.Secret, req.expiry, cfg.Issuer).Issue(req.id, req.name, req.role)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintf(out, "Actor token for %s (%s), valid %s\n", req.id, req.role, req.expiry)
	fmt.Fprintf(out, "Authorization: Bearer %s\n", token)
	return nil
}

func validateInputs(req *tokenRequest) error {
	req.id = strings.TrimSpace(req.id)
	if req.id == "" {
		return fmt.Errorf("-id is required")
	}
	req.name = strings.TrimSpace(req.name)
	if req.name == "" {
		req.name = req.id
	}
	req.role = strings.ToLower(strings.TrimSpace(req.role))
	switch entities.Role(req.role) {
	case entities.RoleAdmin, entities.RoleApprover, entities.RoleSigner:
	default:
		return fmt.Errorf("invalid role: %s (allowed: admin, approver, signer)", req.role)
	}
	if req.expiry <= 0 {
		return fmt.Errorf("invalid expiry: %s (must be positive)", req.expiry)
	}
	return nil
}
