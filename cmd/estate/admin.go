package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"estatecli/internal/model"
)

// cmdPrompts edits the assistant's system-prompt templates (staff only).
func (a *app) cmdPrompts(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		a.prompts.LoadAll(ctx)
		if st := a.prompts.Status(); st.Err != "" {
			fail(errors.New(st.Err))
		}
		for _, name := range []string{model.PromptRenterBuyer, model.PromptSellerAgency} {
			fmt.Printf("%s (%d chars)\n", name, len(a.prompts.Content(name)))
		}

	case "show":
		name := mustPromptName(rest)
		a.prompts.LoadAll(ctx)
		if st := a.prompts.Status(); st.Err != "" {
			fail(errors.New(st.Err))
		}
		fmt.Println(a.prompts.Content(name))

	case "edit":
		fs := flag.NewFlagSet("prompts edit", flag.ExitOnError)
		name := fs.String("name", "", "prompt name")
		file := fs.String("file", "", "new content file ('-'=stdin)")
		_ = fs.Parse(rest)
		if *name == "" || *file == "" {
			fmt.Fprintln(os.Stderr, "need -name and -file")
			os.Exit(1)
		}

		a.prompts.LoadAll(ctx)
		if st := a.prompts.Status(); st.Err != "" {
			fail(errors.New(st.Err))
		}
		content, err := readAll(*file)
		if err != nil {
			fail(err)
		}
		a.prompts.SetContent(*name, string(content))
		if !a.prompts.HasChanges(*name) {
			okf("no changes")
			return
		}
		if err := a.prompts.Save(ctx, *name); err != nil {
			fail(err)
		}
		okf("prompt saved")

	default:
		usage()
	}
}

// cmdStats prints the back-office metric series.
func (a *app) cmdStats(ctx context.Context, args []string) {
	which := "all"
	if len(args) > 0 {
		which = args[0]
	}

	if which == "sales" || which == "all" {
		a.stats.FetchSales(ctx)
	}
	if which == "views" || which == "all" {
		a.stats.FetchViews(ctx)
	}
	if which == "users" || which == "all" {
		a.stats.FetchNewUsers(ctx)
	}

	sales, views, newUsers, st := a.stats.Snapshot()
	if st.Err != "" {
		fail(errors.New(st.Err))
	}
	printSeries("sales", sales)
	printSeries("views", views)
	printSeries("new users", newUsers)
}

// cmdUsers handles admin user management.
func (a *app) cmdUsers(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		a.users.FetchAll(ctx)
		users, st := a.users.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		for _, u := range users {
			mark := " "
			if u.Verified {
				mark = color.GreenString("✓")
			}
			fmt.Printf("#%d %s <%s> %s %s\n", u.ID, u.Username, u.Email, u.Role, mark)
		}
	case "rm":
		if err := a.users.Remove(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("user removed")
	case "verify":
		if err := a.users.Verify(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("user verified")
	case "role":
		fs := flag.NewFlagSet("users role", flag.ExitOnError)
		id := fs.Int64("id", 0, "user id")
		role := fs.String("role", "", "new role")
		_ = fs.Parse(rest)
		if *id == 0 || *role == "" {
			fmt.Fprintln(os.Stderr, "need -id and -role")
			os.Exit(1)
		}
		if err := a.users.ChangeRole(ctx, *id, roleFromString(*role)); err != nil {
			fail(err)
		}
		okf("role updated")
	default:
		usage()
	}
}

// cmdSub shows or purchases the subscription.
func (a *app) cmdSub(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		a.subs.Fetch(ctx)
		current, st := a.subs.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		printJSON(current)
	case "buy":
		fs := flag.NewFlagSet("sub buy", flag.ExitOnError)
		plan := fs.String("plan", "", "plan name")
		_ = fs.Parse(rest)
		if *plan == "" {
			fmt.Fprintln(os.Stderr, "need -plan")
			os.Exit(1)
		}
		if err := a.subs.Purchase(ctx, *plan); err != nil {
			fail(err)
		}
		current, _ := a.subs.Snapshot()
		okf("subscribed: %s (until %s)", current.Plan, current.ExpiresAt.Format("2006-01-02"))
	default:
		usage()
	}
}

// ---- helpers ----

func printSeries(name string, pts []model.StatPoint) {
	if len(pts) == 0 {
		return
	}
	color.New(color.Bold).Println(name)
	for _, p := range pts {
		fmt.Printf("  %-12s %.0f\n", p.Period, p.Value)
	}
}

func mustPromptName(args []string) string {
	fs := flag.NewFlagSet("prompt name", flag.ExitOnError)
	name := fs.String("name", "", "prompt name")
	_ = fs.Parse(args)
	if *name == "" {
		fmt.Fprintln(os.Stderr, "need -name")
		os.Exit(1)
	}
	return *name
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}
