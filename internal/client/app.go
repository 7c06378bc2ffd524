// Package client implements the fornecedor command line client on top of
// [adapter.ServerAdapter].
package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/MKhiriev/fornecedor-api/internal/adapter"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")
)

const usage = `usage: fornecedor-client [-token TOKEN] <command> [flags] [id]

commands:
  register -email E -password P [-confirm P]
  login    -email E -password P
  list
  get      <id>
  create   -nome N -documento D [-ativo]
  update   <id> -nome N -documento D [-ativo]
  delete   <id>
  version
`

type App struct {
	adapter adapter.ServerAdapter
	out     io.Writer

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	return &App{adapter: serverAdapter, out: out, logger: logger}
}

// Run parses args and executes one command. Results are printed to the
// app's writer as indented JSON, except the version which is printed as is.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fornecedor-client", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Usage = func() { fmt.Fprint(a.out, usage) }
	token := fs.String("token", "", "bearer token for authenticated commands")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ErrMissingArgs
	}
	if *token != "" {
		a.adapter.SetToken(*token)
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	a.logger.Debug().Str("command", command).Msg("running command")

	switch command {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "list":
		return a.list(ctx)
	case "get":
		return a.get(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "version":
		return a.version(ctx)
	default:
		fs.Usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation (defaults to -password)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *confirm == "" {
		*confirm = *password
	}

	response, err := a.adapter.Register(ctx, models.RegisterUser{
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return a.print(response)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	response, err := a.adapter.Login(ctx, models.LoginUser{Email: *email, Password: *password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return a.print(response)
}

func (a *App) list(ctx context.Context) error {
	suppliers, err := a.adapter.ListSuppliers(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}

	return a.print(suppliers)
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}

	supplier, err := a.adapter.GetSupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	return a.print(supplier)
}

func (a *App) create(ctx context.Context, args []string) error {
	supplier, err := a.parseSupplier("create", args)
	if err != nil {
		return err
	}

	created, err := a.adapter.CreateSupplier(ctx, supplier)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	return a.print(created)
}

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: update needs an id", ErrMissingArgs)
	}

	supplier, err := a.parseSupplier("update", args[1:])
	if err != nil {
		return err
	}
	supplier.ID = args[0]

	if err = a.adapter.UpdateSupplier(ctx, supplier); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	fmt.Fprintf(a.out, "supplier %s updated\n", supplier.ID)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	fmt.Fprintf(a.out, "supplier %s deleted\n", id)
	return nil
}

func (a *App) version(ctx context.Context) error {
	version, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	fmt.Fprintln(a.out, version)
	return nil
}

func (a *App) parseSupplier(name string, args []string) (models.Supplier, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	nome := fs.String("nome", "", "supplier name")
	documento := fs.String("documento", "", "supplier CPF/CNPJ")
	ativo := fs.Bool("ativo", false, "supplier is active")
	if err := fs.Parse(args); err != nil {
		return models.Supplier{}, err
	}

	return models.Supplier{Name: *nome, Document: *documento, Active: *ativo}, nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func singleID(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: exactly one id expected", ErrMissingArgs)
	}
	return args[0], nil
}
