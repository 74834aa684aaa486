package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atinyakov/PatoApp/internal/client"
	"github.com/atinyakov/PatoApp/internal/models"
)

var (
	version   string
	buildDate string
)

const helpText = "Available commands: help, register, login, logout, me, list [query], get <id>, sound <id>, " +
	"add, edit <id>, delete <id>, plans, upgrade, exit"

// repl runs the interactive shell loop against the API.
func repl(ctx context.Context, c *client.Client, in io.Reader, out io.Writer) {
	prompt := client.NewPrompter(in, out)

	for {
		line, ok := prompt.Next("patoapp> ")
		if !ok {
			break
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(out, "Bye")
			return
		}
		if err := dispatch(ctx, c, prompt, out, args); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// dispatch runs one REPL command.
func dispatch(ctx context.Context, c *client.Client, prompt *client.Prompter, out io.Writer, args []string) error {
	needID := func() (string, bool) {
		if len(args) < 2 {
			fmt.Fprintf(out, "Usage: %s <id>\n", args[0])
			return "", false
		}
		return args[1], true
	}

	switch args[0] {
	case "help":
		fmt.Fprintln(out, helpText)
	case "register":
		if err := c.Register(ctx, prompt.Register()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Account created. Use 'login' to sign in.")
	case "login":
		email, _ := prompt.Line("Email")
		password, _ := prompt.Line("Password")
		u, err := c.Login(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Welcome, %s %s (%s, %s plan)\n", u.FirstName, u.LastName, u.Role, u.Plan)
	case "logout":
		if err := c.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logged out")
	case "me":
		u, err := c.Me(ctx)
		if err != nil {
			return err
		}
		printJSON(out, u)
	case "list":
		patos, err := c.Search(ctx, strings.Join(args[1:], " "), models.SearchFilters{})
		if err != nil {
			return err
		}
		for _, p := range patos {
			fmt.Fprintf(out, "%s\t%s (%s)\n", p.ID, p.Name, p.ScientificName)
		}
	case "get":
		id, ok := needID()
		if !ok {
			return nil
		}
		p, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		printJSON(out, p)
	case "sound":
		id, ok := needID()
		if !ok {
			return nil
		}
		sound, err := c.Sound(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sound)
	case "add":
		p, err := c.Create(ctx, prompt.Pato())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pato %s added\n", p.ID)
	case "edit":
		id, ok := needID()
		if !ok {
			return nil
		}
		current, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		if _, err := c.Update(ctx, id, prompt.Patch(current)); err != nil {
			return err
		}
		fmt.Fprintln(out, "Pato updated")
	case "delete":
		id, ok := needID()
		if !ok {
			return nil
		}
		if err := c.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Pato deleted")
	case "plans":
		offers, err := c.Plans(ctx)
		if err != nil {
			return err
		}
		for _, o := range offers {
			fmt.Fprintf(out, "%s\t%d %s / %s\n", o.Plan, o.Price, o.Currency, o.Duration)
		}
	case "upgrade":
		method, card := prompt.Checkout()
		fmt.Fprintln(out, "Processing payment...")
		u, err := c.Checkout(ctx, method, card)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Plan is now %s\n", u.Plan)
	default:
		fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func printJSON(out io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(out, string(b))
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL string
		caFile  string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for an HTTPS server")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("PatoApp Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	c, err := client.New(baseURL, caFile)
	if err != nil {
		log.Fatal(err)
	}
	repl(context.Background(), c, os.Stdin, os.Stdout)
}
