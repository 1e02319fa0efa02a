// Package cli implements the interactive terminal menus. It is a thin shell:
// every action delegates to a service, every service error is translated into
// a user-facing message, and only storage faults escape the loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mlvance/cardbank/internal/service"
)

// Menu drives the two-level menu state machine: a logged-out root menu and a
// per-session account menu.
type Menu struct {
	issuer    service.Issuer
	auth      service.Authenticator
	accounts  service.Accounter
	transfers service.Transferrer
	in        *bufio.Scanner
	out       io.Writer
	log       *slog.Logger
}

// session binds an authenticated card number to the menu actions performed
// before logout. It is created on login and threaded explicitly into every
// call; there is no process-global login state.
type session struct {
	id         uuid.UUID
	cardNumber string
}

// New creates a Menu reading user input from in and printing prompts to out
func New(
	issuer service.Issuer,
	auth service.Authenticator,
	accounts service.Accounter,
	transfers service.Transferrer,
	in io.Reader,
	out io.Writer,
	log *slog.Logger,
) *Menu {
	return &Menu{
		issuer:    issuer,
		auth:      auth,
		accounts:  accounts,
		transfers: transfers,
		in:        bufio.NewScanner(in),
		out:       out,
		log:       log,
	}
}

// Run executes the root menu loop until the user exits or input ends.
// It returns a non-nil error only for unrecoverable storage faults.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.println("1. Create an account")
		m.println("2. Log into account")
		m.println("0. Exit")

		choice, ok := m.readLine()
		if !ok {
			return nil
		}

		switch choice {
		case "0":
			m.println("Bye!")
			return nil
		case "1":
			if err := m.createAccount(ctx); err != nil {
				return err
			}
		case "2":
			exit, err := m.logIntoAccount(ctx)
			if err != nil {
				return err
			}
			if exit {
				m.println("Bye!")
				return nil
			}
		default:
			m.println("Unknown option! Type 1, 2 or 0.")
		}
	}
}

func (m *Menu) createAccount(ctx context.Context) error {
	account, err := m.issuer.Issue(ctx)
	if err != nil {
		if service.ErrorCode(err) == service.ErrCodeKeyspaceExhausted {
			m.println("Unable to issue a card right now. Please try again later.")
			return nil
		}
		return err
	}

	m.println("Your card has been created")
	m.println("Your card number:")
	m.println(account.Number)
	m.println("Your card PIN:")
	m.println(account.PIN)
	return nil
}

// logIntoAccount authenticates the user and, on success, runs the account
// menu. It reports whether the user chose to exit the whole program.
func (m *Menu) logIntoAccount(ctx context.Context) (exit bool, err error) {
	m.println("Enter your card number:")
	number, ok := m.readLine()
	if !ok {
		return true, nil
	}

	m.println("Enter your PIN:")
	pin, ok := m.readLine()
	if !ok {
		return true, nil
	}

	account, err := m.auth.Authenticate(ctx, number, pin)
	if err != nil {
		switch service.ErrorCode(err) {
		case service.ErrCodeNotFound, service.ErrCodeInvalidPIN:
			// One message for both, so a login probe cannot tell a
			// missing card from a wrong PIN.
			m.println("Wrong card number or PIN!")
			return false, nil
		default:
			return false, err
		}
	}

	m.println("You have successfully logged in!")

	sess := session{id: uuid.New(), cardNumber: account.Number}
	m.log.Info("session opened", "session_id", sess.id)

	exit, err = m.accountMenu(ctx, sess)

	m.log.Info("session closed", "session_id", sess.id)
	return exit, err
}

// accountMenu runs the logged-in loop for one session. The balance shown is
// always re-read from the store; the login snapshot is never reused.
func (m *Menu) accountMenu(ctx context.Context, sess session) (exit bool, err error) {
	for {
		m.println("1. Balance")
		m.println("2. Add income")
		m.println("3. Do transfer")
		m.println("4. Close account")
		m.println("5. Log out")
		m.println("0. Exit")

		choice, ok := m.readLine()
		if !ok {
			return true, nil
		}

		switch choice {
		case "0":
			return true, nil
		case "1":
			balance, err := m.accounts.Balance(ctx, sess.cardNumber)
			if err != nil {
				return false, err
			}
			m.println(fmt.Sprintf("Balance: %d", balance))
		case "2":
			if err := m.addIncome(ctx, sess); err != nil {
				return false, err
			}
		case "3":
			if err := m.doTransfer(ctx, sess); err != nil {
				return false, err
			}
		case "4":
			if err := m.accounts.Close(ctx, sess.cardNumber); err != nil {
				return false, err
			}
			m.println("The account has been closed!")
			return false, nil
		case "5":
			m.println("You have successfully logged out!")
			return false, nil
		default:
			m.println("Unknown option! Type 1, 2, 3, 4, 5 or 0.")
		}
	}
}

func (m *Menu) addIncome(ctx context.Context, sess session) error {
	m.println("Enter income:")
	amount, ok := m.readAmount()
	if !ok {
		return nil
	}

	if err := m.accounts.Deposit(ctx, sess.cardNumber, amount); err != nil {
		if service.ErrorCode(err) == service.ErrCodeInvalidAmount {
			m.println("Income must be a positive amount!")
			return nil
		}
		return err
	}

	m.println("Income was added!")
	return nil
}

func (m *Menu) doTransfer(ctx context.Context, sess session) error {
	m.println("Transfer")
	m.println("Enter card number:")
	destination, ok := m.readLine()
	if !ok {
		return nil
	}

	m.println("Enter how much money you want to transfer:")
	amount, ok := m.readAmount()
	if !ok {
		return nil
	}

	err := m.transfers.Transfer(ctx, sess.cardNumber, destination, amount)
	if err != nil {
		switch service.ErrorCode(err) {
		case service.ErrCodeSameAccount:
			m.println("You can't transfer money to the same account!")
		case service.ErrCodeInvalidDestination:
			m.println("Probably you made a mistake in the card number. Please try again!")
		case service.ErrCodeDestinationNotFound:
			m.println("Such a card does not exist.")
		case service.ErrCodeInsufficientFunds:
			m.println("Not enough money!")
		case service.ErrCodeInvalidAmount:
			m.println("You can't transfer a non-positive amount!")
		default:
			return err
		}
		return nil
	}

	m.println("Money has been successfully transferred!")
	return nil
}

// readAmount reads an integer amount, reporting malformed input to the user.
// ok is false when input ended or the line was not a number.
func (m *Menu) readAmount() (amount int64, ok bool) {
	line, ok := m.readLine()
	if !ok {
		return 0, false
	}

	amount, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		m.println("That is not a number!")
		return 0, false
	}

	return amount, true
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}
