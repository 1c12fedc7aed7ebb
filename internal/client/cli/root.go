package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.OperatorID)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Veritas operator console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("veritas %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: analyze, list, delete, purge, audit, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.runCommand(func() error { return a.Register(ctx) })
		case "login":
			a.runCommand(func() error { return a.Login(ctx) })
		case "analyze":
			a.runAuthed(func() error { return a.Analyze(ctx) })
		case "list":
			a.runAuthed(func() error { return a.List(ctx) })
		case "delete":
			a.runAuthed(func() error { return a.Delete(ctx) })
		case "purge":
			a.runAuthed(func() error { return a.Purge(ctx) })
		case "audit":
			a.runAuthed(func() error { return a.Audit(ctx, args) })
		case "logout":
			a.runAuthed(func() error { return a.Logout(ctx) })
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) runCommand(fn func() error) {
	if err := fn(); err != nil {
		log.Printf("error: %v", err)
	}
}

func (a *App) runAuthed(fn func() error) {
	if !a.isLoggedIn() {
		fmt.Println("Please login first.")
		return
	}
	a.runCommand(fn)
}
