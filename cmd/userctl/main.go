// Command userctl creates a user account directly in the users store,
// bypassing the HTTP API. Intended for operators seeding an instance.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/secondchance/secondchance/internal/auth"
	"github.com/secondchance/secondchance/internal/config"
	"github.com/secondchance/secondchance/internal/models"
	"github.com/secondchance/secondchance/internal/server/storage"
	"github.com/secondchance/secondchance/internal/server/storage/boltdb"
	"github.com/secondchance/secondchance/internal/server/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "userctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	engine := flag.String("e", config.EngineSQLite, "storage engine: sqlite or bolt")
	dbPath := flag.String("d", "secondchance.db", "database file path")
	email := flag.String("email", "", "email of the new user")
	firstName := flag.String("first", "", "first name of the new user")
	lastName := flag.String("last", "", "last name of the new user")
	flag.Parse()

	if *email == "" || *firstName == "" || *lastName == "" {
		return fmt.Errorf("-email, -first and -last are required")
	}

	ctx := context.Background()

	var (
		store storage.UserStorage
		err   error
	)
	switch *engine {
	case config.EngineBolt:
		store, err = boltdb.New(ctx, *dbPath)
	case config.EngineSQLite:
		store, err = sqlite.New(ctx, *dbPath)
	default:
		return fmt.Errorf("unknown storage engine %q", *engine)
	}
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := store.Insert(ctx, &models.User{
		Email:        *email,
		FirstName:    *firstName,
		LastName:     *lastName,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Println("User created")
	fmt.Printf("ID:    %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)

	return nil
}

// readPassword prompts on stdout and reads a password without echo when
// stdin is a terminal, falling back to a plain line read otherwise (pipes,
// tests).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pwBytes, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(pwBytes), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
