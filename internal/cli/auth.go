package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcloud/internal/backend"
	"github.com/dmitrijs2005/gophcloud/internal/common"
	"github.com/dmitrijs2005/gophcloud/internal/intake"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for name, email, password and confirmation, validates the
// form and creates the account. Validation messages are printed and the
// store is not called.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	secret, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := intake.ValidateRegistration(name, email, secret, confirm); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	_, err = a.session.Register(ctx, name, email, secret)
	return err
}

// Login prompts for credentials and authenticates. The outcome is reported
// by the session store's notifications.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	secret, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	_, err = a.session.Login(ctx, email, secret)
	return err
}

// Demo logs in with the demo account.
func (a *App) Demo(ctx context.Context) error {
	_, err := a.session.Login(ctx, backend.DemoEmail, []byte(backend.DemoSecret))
	if err != nil && !errors.Is(err, context.Canceled) {
		a.notifier.Error("Failed to log in with demo account")
	}
	return err
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	id := a.session.Current()
	if id == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", id.Name, id.Email, id.ID)
	return nil
}
