package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sentinel-defense/backend/internal/config"
	"github.com/sentinel-defense/backend/internal/logging"
	"github.com/sentinel-defense/backend/pkg/auth"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: optoken -user <operator>

Prints a session token accepted by GET /api/contact-submissions when
AUTH_REQUIRED=true. The token is signed with SESSION_SECRET and is valid
only while the operator is listed in OPERATORS.`)
	os.Exit(1)
}

func main() {
	user := flag.String("user", "", "operator username")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if *user == "" {
		usage()
	}
	if cfg.UsesDevSecret() {
		fmt.Fprintln(os.Stderr, "warning: signing with the development SESSION_SECRET")
	}

	fmt.Println(auth.CreateSessionToken(*user, auth.SessionSecretBytes(cfg.SessionSecret)))
}
