package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

// cmdProps handles the listing subcommands.
func (a *app) cmdProps(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		fs := flag.NewFlagSet("props list", flag.ExitOnError)
		status := fs.String("status", "", "active|inactive|sold_rented (comma-separated for several)")
		txn := fs.String("txn", "", "sale|rent")
		ptype := fs.String("type", "", "property type")
		search := fs.String("search", "", "search text")
		rooms := fs.Int("rooms", 0, "room count")
		sort := fs.String("sort", "", "sort key")
		_ = fs.Parse(rest)

		if strings.Contains(*status, ",") {
			var statuses []model.PropertyStatus
			for _, s := range strings.Split(*status, ",") {
				statuses = append(statuses, model.PropertyStatus(strings.TrimSpace(s)))
			}
			a.props.FetchMultiple(ctx, statuses)
		} else {
			a.filters.SetStatus(model.PropertyStatus(*status))
			a.filters.SetTransactionType(model.TransactionType(*txn))
			a.filters.SetPropertyType(*ptype)
			a.filters.SetSearch(*search)
			a.filters.SetRooms(*rooms)
			a.filters.SetSort(*sort)
			a.props.FetchAll(ctx, a.filters.Filter())
		}

		items, st := a.props.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		a.filters.DeriveBounds(items)
		printProperties(items)

	case "get":
		id := mustID(rest)
		a.props.FetchByID(ctx, id)
		items, st := a.props.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		for _, p := range items {
			if p.ID == id {
				printJSON(p)
				return
			}
		}

	case "mine":
		a.props.FetchMine(ctx)
		items, st := a.props.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		printProperties(items)

	case "add", "edit":
		fs := flag.NewFlagSet("props "+sub, flag.ExitOnError)
		id := fs.Int64("id", 0, "listing id (edit only)")
		title := fs.String("title", "", "listing title")
		desc := fs.String("desc", "", "description")
		ptype := fs.String("type", "", "property type (apartment, house, ...)")
		txn := fs.String("txn", "sale", "sale|rent")
		price := fs.Float64("price", 0, "asking price")
		currency := fs.String("currency", "EUR", "ISO currency code")
		size := fs.Float64("size", 0, "size in m2")
		rooms := fs.Int("rooms", 0, "room count")
		address := fs.String("address", "", "address")
		facilities := fs.String("facilities", "", "comma-joined facility tags")
		_ = fs.Parse(rest)

		draft := api.PropertyDraft{
			Title:           *title,
			Description:     *desc,
			PropertyType:    *ptype,
			TransactionType: model.TransactionType(*txn),
			Price:           *price,
			Currency:        *currency,
			Size:            *size,
			Rooms:           *rooms,
			Address:         *address,
			Facilities:      model.JoinFacilities(strings.Split(*facilities, ",")),
		}
		var err error
		if sub == "add" {
			err = a.props.Create(ctx, draft)
		} else {
			if *id == 0 {
				fmt.Fprintln(os.Stderr, "need -id")
				os.Exit(1)
			}
			err = a.props.Update(ctx, *id, draft)
		}
		if err != nil {
			fail(err)
		}
		okf("saved")

	case "rm":
		if err := a.props.Remove(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("removed")

	case "verify":
		if err := a.props.Verify(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("verified")

	default:
		usage()
	}
}

// cmdWish handles wishlist membership.
func (a *app) cmdWish(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		a.wish.Fetch(ctx)
		items, st := a.wish.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		printProperties(items)
	case "add":
		if err := a.wish.Add(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("added to wishlist")
	case "rm":
		if err := a.wish.Remove(ctx, mustID(rest)); err != nil {
			fail(err)
		}
		okf("removed from wishlist")
	default:
		usage()
	}
}

// cmdChat drives the assistant conversation.
func (a *app) cmdChat(ctx context.Context, args []string) {
	sub := "history"
	var rest []string
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	switch sub {
	case "history":
		a.chat.LoadHistory(ctx)
		msgs, st := a.chat.Snapshot()
		if st.Err != "" {
			fail(errors.New(st.Err))
		}
		printMessages(msgs)
	case "send":
		content := strings.Join(rest, " ")
		if content == "" {
			content = readLine("message: ")
		}
		if err := a.chat.Send(ctx, content); err != nil {
			fail(err)
		}
		msgs, _ := a.chat.Snapshot()
		printMessages(msgs)
	default:
		usage()
	}
}

// ---- output ----

func printProperties(items []model.Property) {
	if len(items) == 0 {
		fmt.Println("no listings")
		return
	}
	bold := color.New(color.Bold)
	for _, p := range items {
		mark := " "
		if p.Verified {
			mark = color.GreenString("✓")
		}
		bold.Printf("#%d %s", p.ID, p.Title)
		fmt.Printf("  [%s/%s] %s %.0f %s  %.0f m2, %d rooms  %s\n",
			p.TransactionType, p.Status, mark, p.Price, p.Currency, p.Size, p.Rooms, p.Address)
	}
}

func printMessages(msgs []model.Message) {
	for _, m := range msgs {
		if m.Sender == model.SenderAI {
			color.Cyan("ai> %s", m.Content)
		} else {
			fmt.Printf("you> %s\n", m.Content)
		}
	}
}

func mustID(args []string) int64 {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	id := fs.Int64("id", 0, "entity id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	return *id
}

func readLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	sc := bufio.NewScanner(os.Stdin)
	sc.Scan()
	return strings.TrimSpace(sc.Text())
}

func roleFromString(s string) model.Role {
	r := model.Role(strings.TrimSpace(s))
	if !r.Valid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", s)
		os.Exit(1)
	}
	return r
}
