package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/veritaslab/veritas/internal/common"
)

// getSimpleText and getPasskey are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPasskey = GetPasskey

// Register prompts for an operator id and passkey and creates a new
// identity. Registration implies login: the returned session is installed
// and persisted. The passkey byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	operatorID, err := getSimpleText(a.reader, "Enter operator id", os.Stdout)
	if err != nil {
		return err
	}

	passkey, err := getPasskey(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passkey)

	session, err := a.client.Register(ctx, operatorID, passkey)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			fmt.Println("That operator id is already registered.")
			return err
		}
		return err
	}

	a.session = session
	if err := a.sessions.Save(session); err != nil {
		fmt.Printf("Warning: session not persisted: %v\n", err)
	}

	fmt.Printf("Registered. Welcome, %s!\n", session.OperatorID)
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// is installed and persisted. The passkey byte slice is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	operatorID, err := getSimpleText(a.reader, "Enter operator id", os.Stdout)
	if err != nil {
		return err
	}

	passkey, err := getPasskey(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passkey)

	session, err := a.client.Login(ctx, operatorID, passkey)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Println("Invalid credentials.")
			return err
		}
		return err
	}

	a.session = session
	if err := a.sessions.Save(session); err != nil {
		fmt.Printf("Warning: session not persisted: %v\n", err)
	}

	fmt.Printf("Logged in as %s.\n", session.OperatorID)
	return nil
}

// Logout tells the backend, clears the session marker, and forgets the
// local session. A failed server call still clears local state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		fmt.Printf("Warning: logout not recorded server-side: %v\n", err)
	}

	a.session = nil
	a.client.SetToken("")
	if err := a.sessions.Clear(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
