// Command estate is a terminal client for the estate marketplace backend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/term"

	"estatecli/internal/api"
	"estatecli/internal/config"
	"estatecli/internal/errs"
	"estatecli/internal/logger"
	"estatecli/internal/session"
	"estatecli/internal/store"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app wires the session client, api bindings, and one instance of every
// store. Stores are plain constructed values, not process-wide singletons.
type app struct {
	cfg *config.Config
	log *zap.Logger

	auth    *store.AuthStore
	props   *store.PropertyStore
	wish    *store.WishlistStore
	users   *store.UserStore
	chat    *store.ChatStore
	prompts *store.PromptStore
	stats   *store.StatsStore
	subs    *store.SubscriptionStore
	filters *store.FilterStore
}

func newApp(baseOverride string, timeoutOverride time.Duration, verbose bool) *app {
	cfg := config.Load()
	if baseOverride != "" {
		cfg.BaseURL = baseOverride
	}
	if timeoutOverride > 0 {
		cfg.RequestTimeout = timeoutOverride
	}

	log := logger.New(cfg.LogFilePath, verbose)
	ks := session.NewKeystore(cfg.ConfigDir)
	sc := session.New(cfg.BaseURL, ks, log, cfg.RequestTimeout)
	bindings := api.New(sc)

	a := &app{
		cfg:     cfg,
		log:     log,
		auth:    store.NewAuthStore(bindings, ks, log),
		props:   store.NewPropertyStore(bindings, log),
		wish:    store.NewWishlistStore(bindings, log),
		users:   store.NewUserStore(bindings, log),
		chat:    store.NewChatStore(bindings, log),
		prompts: store.NewPromptStore(bindings, log),
		stats:   store.NewStatsStore(bindings, log),
		subs:    store.NewSubscriptionStore(bindings, log),
		filters: store.NewFilterStore(),
	}
	sc.OnSessionExpired(a.auth.ForceLogout)
	return a
}

func usage() {
	fmt.Fprintf(os.Stderr, `estate CLI
Usage:
  estate [-base URL] [-timeout DUR] [-v] <cmd> [args]

Commands:
  version
  login      -email <email> [-password <pw>]
  register   -email <email> -username <name> -role <role> [-password <pw>]
  google     -code <oauth-code>
  logout
  whoami
  props      list|get|mine|add|edit|rm|verify ...
  wish       list|add|rm ...
  chat       history|send ...
  prompts    list|show|edit ...
  stats      [sales|views|users|all]
  users      list|rm|verify|role ...
  sub        show|buy ...
`)
	os.Exit(2)
}

func main() {
	base := flag.String("base", "", "API base URL (overrides env)")
	timeout := flag.Duration("timeout", 0, "per-request timeout (overrides env)")
	verbose := flag.Bool("v", false, "mirror debug logs to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("estate %s (%s)\n", version, buildDate)
		return
	}

	a := newApp(*base, *timeout, *verbose)
	defer func() { _ = a.log.Sync() }()

	ctx := context.Background()

	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "password (prompted when omitted)")
		_ = fs.Parse(args)
		if *email == "" {
			fmt.Fprintln(os.Stderr, "need -email")
			os.Exit(1)
		}
		pw := *password
		if pw == "" {
			pw = promptPassword()
		}
		if err := a.auth.Login(ctx, *email, pw); err != nil {
			fail(err)
		}
		okf("logged in as %s", *email)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		username := fs.String("username", "", "display name")
		role := fs.String("role", "renter_buyer", "renter_buyer|private_seller|agency")
		password := fs.String("password", "", "password (prompted when omitted)")
		_ = fs.Parse(args)
		if *email == "" || *username == "" {
			fmt.Fprintln(os.Stderr, "need -email and -username")
			os.Exit(1)
		}
		pw := *password
		if pw == "" {
			pw = promptPassword()
		}
		err := a.auth.Register(ctx, api.RegisterRequest{
			Email:    *email,
			Username: *username,
			Password: pw,
			Role:     roleFromString(*role),
		})
		if err != nil {
			fail(err)
		}
		okf("registered %s", *email)

	case "google":
		fs := flag.NewFlagSet("google", flag.ExitOnError)
		code := fs.String("code", "", "OAuth authorization code")
		_ = fs.Parse(args)
		if *code == "" {
			fmt.Fprintln(os.Stderr, "need -code")
			os.Exit(1)
		}
		if err := a.auth.LoginGoogle(ctx, *code); err != nil {
			fail(err)
		}
		okf("logged in via Google")

	case "logout":
		if err := a.auth.Logout(ctx); err != nil {
			fail(err)
		}
		okf("logged out")

	case "whoami":
		a.auth.FetchCurrent(ctx)
		if st := a.auth.Status(); st.Err != "" {
			fail(errors.New(st.Err))
		}
		printJSON(a.auth.CurrentUser())

	case "props":
		a.cmdProps(ctx, args)
	case "wish":
		a.cmdWish(ctx, args)
	case "chat":
		a.cmdChat(ctx, args)
	case "prompts":
		a.cmdPrompts(ctx, args)
	case "stats":
		a.cmdStats(ctx, args)
	case "users":
		a.cmdUsers(ctx, args)
	case "sub":
		a.cmdSub(ctx, args)
	default:
		usage()
	}
}

// ---- helpers ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func okf(format string, args ...any) {
	color.Green(format, args...)
}

func promptPassword() string {
	fmt.Fprint(os.Stderr, "password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fail(err)
	}
	return string(pw)
}

func fail(err error) {
	switch {
	case errors.Is(err, errs.ErrNoSession):
		color.Red("not logged in (run: estate login)")
	case errors.Is(err, errs.ErrSessionExpired):
		color.Red("session expired, please log in again")
	case errors.Is(err, errs.ErrNetwork):
		color.Red("network error, check your connection")
	default:
		color.Red("%v", err)
	}
	os.Exit(1)
}
