// Command userctl creates user accounts from the command line, for
// bootstrapping and support work. The password is read from the terminal
// without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fitleveling/fitleveling/internal/flagx"
	"github.com/fitleveling/fitleveling/internal/server/auth"
	"github.com/fitleveling/fitleveling/internal/server/config"
	"github.com/fitleveling/fitleveling/internal/server/models"
	"github.com/fitleveling/fitleveling/internal/server/shared/db"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func getPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func main() {

	cfg := config.LoadConfig()

	// The shared config flags live on the same argument list, so only the
	// flags owned here are parsed.
	args := flagx.FilterArgs(os.Args[1:], []string{"-name", "-email"})

	fs := flag.NewFlagSet("userctl", flag.ExitOnError)
	name := fs.String("name", "", "display name for the new user")
	email := fs.String("email", "", "email for the new user")
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}

	if *name == "" || *email == "" {
		log.Fatal("both -name and -email are required")
	}

	password, err := getPassword()
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if len(password) == 0 {
		log.Fatal("password must not be empty")
	}

	hash, err := auth.NewPasswordHasher().Hash(string(password))
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer m.Conn().Close()

	user := &models.User{Name: *name, Email: *email, PasswordHash: hash}
	user, err = m.Users().Create(context.Background(), user)
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}

	fmt.Printf("created user %s (%s)\n", user.ID, user.Email)
}
