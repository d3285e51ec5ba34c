// Command shop is a terminal storefront session against the API: browse
// the product feed, fill a locally persisted cart, and check out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/api"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/cart"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/checkout"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/config"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/feed"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/kvstore"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[shop] ", log.LstdFlags|log.LUTC)

	storage, err := kvstore.OpenSQLite(cfg.CartDBPath)
	if err != nil {
		logger.Fatalf("open cart store: %v", err)
	}
	defer storage.Close()

	client := api.New(cfg.APIBaseURL, logger)
	cartStore := cart.New(storage, logger, cart.Policy{})
	products := feed.New(client, logger)
	orders := checkout.New(client, cartStore, logger)
	settings := kvstore.NewSettings(storage)

	ctx := context.Background()
	if err := products.SetFilter(ctx, domain.FeedFilter{}); err != nil {
		logger.Printf("load feed: %v", err)
	}

	session := &session{
		out:      os.Stdout,
		in:       bufio.NewScanner(os.Stdin),
		client:   client,
		cart:     cartStore,
		feed:     products,
		checkout: orders,
		settings: settings,
	}
	session.run(ctx)
}

type session struct {
	out      io.Writer
	in       *bufio.Scanner
	client   *api.Client
	cart     *cart.Store
	feed     *feed.Controller
	checkout *checkout.Service
	settings *kvstore.Settings
}

func (s *session) run(ctx context.Context) {
	s.printFeed()
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return
		case "help":
			s.printHelp()
		case "list":
			s.printFeed()
		case "more":
			if err := s.feed.LoadMore(ctx); err != nil {
				fmt.Fprintf(s.out, "load more: %v\n", err)
			}
			s.printFeed()
		case "filter":
			s.applyFilter(ctx, fields[1:])
		case "view":
			s.switchView(fields[1:])
		case "show":
			s.showProduct(ctx, fields[1:])
		case "add":
			s.addToCart(ctx, fields[1:])
		case "drop":
			s.dropFromCart(fields[1:])
		case "cart":
			s.printCart()
		case "checkout":
			s.runCheckout(ctx)
		default:
			fmt.Fprintf(s.out, "unknown command %q, try help\n", fields[0])
		}
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, `commands:
  list                     show the current feed page(s)
  more                     load the next page
  filter [cat=N] [order=asc|desc] [q=TEXT]
  view grid|list           switch and persist the feed view
  show ID                  show a product's detail
  add ID [COUNT]           add a product to the cart
  drop ID                  remove one unit of a product
  cart                     show the cart
  checkout                 submit the cart
  quit`)
}

func (s *session) printFeed() {
	snap := s.feed.Snapshot()
	if snap.Err != nil {
		fmt.Fprintf(s.out, "feed error: %v\n", snap.Err)
		return
	}
	if snap.InitialLoading {
		fmt.Fprintln(s.out, "loading...")
		return
	}
	fmt.Fprintf(s.out, "%d products (%s view)\n", len(snap.Items), s.settings.View())
	for _, p := range snap.Items {
		marker := " "
		if p.Quantity == 0 && !p.HasVariant {
			marker = "!"
		}
		fmt.Fprintf(s.out, "  %s %4d  %-30s %8d\n", marker, p.ID, p.Name, p.Price)
	}
	if snap.HasMore {
		fmt.Fprintln(s.out, "  (more available, type: more)")
	}
}

func (s *session) applyFilter(ctx context.Context, args []string) {
	var filter domain.FeedFilter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(s.out, "bad filter term %q\n", arg)
			return
		}
		switch key {
		case "cat":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				fmt.Fprintf(s.out, "bad category %q\n", value)
				return
			}
			filter.CategoryID = id
		case "order":
			filter.PriceOrder = domain.PriceOrder(value)
		case "q":
			filter.NameQuery = value
		default:
			fmt.Fprintf(s.out, "unknown filter key %q\n", key)
			return
		}
	}
	if err := s.feed.SetFilter(ctx, filter); err != nil {
		fmt.Fprintf(s.out, "filter: %v\n", err)
		return
	}
	s.printFeed()
}

func (s *session) switchView(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: view grid|list")
		return
	}
	if err := s.settings.SetView(args[0]); err != nil {
		fmt.Fprintf(s.out, "set view: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "view is now %s\n", s.settings.View())
}

func (s *session) showProduct(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: show ID")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "bad product id %q\n", args[0])
		return
	}
	p, err := s.client.FetchProduct(ctx, id)
	if err != nil {
		fmt.Fprintf(s.out, "fetch product: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "%s (%d)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Fprintf(s.out, "  %s\n", p.Description)
	}
	fmt.Fprintf(s.out, "  price %d, stock %d\n", p.Price, p.Quantity)
	for _, g := range p.Variants {
		fmt.Fprintf(s.out, "  %s: %s\n", g.Name, strings.Join(g.Options, ", "))
	}
}

func (s *session) addToCart(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: add ID [COUNT]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "bad product id %q\n", args[0])
		return
	}
	count := 1
	if len(args) > 1 {
		if count, err = strconv.Atoi(args[1]); err != nil {
			fmt.Fprintf(s.out, "bad count %q\n", args[1])
			return
		}
	}

	product, ok := s.findProduct(id)
	if !ok {
		fmt.Fprintf(s.out, "product %d is not in the loaded feed\n", id)
		return
	}

	var result cart.AddResult
	if product.HasVariant {
		option := s.prompt("option name: ")
		variant, err := s.client.FetchVariant(ctx, product.ID, option)
		if err != nil {
			fmt.Fprintf(s.out, "fetch variant: %v\n", err)
			return
		}
		result = s.cart.AddVariant(product, variant, count)
	} else {
		result = s.cart.Add(product, count)
	}
	fmt.Fprintf(s.out, "%s, cart total %d\n", result, s.cart.Total())
}

func (s *session) dropFromCart(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: drop ID")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "bad product id %q\n", args[0])
		return
	}
	s.cart.Decrement(id)
	s.printCart()
}

func (s *session) printCart() {
	state := s.cart.State()
	if len(state.Lines) == 0 {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}
	for _, line := range state.Lines {
		if len(line.Variants) == 0 {
			fmt.Fprintf(s.out, "  %4d  %-30s x%-3d %8d\n", line.Product.ID, line.Product.Name, line.Count, line.LineTotal())
			continue
		}
		fmt.Fprintf(s.out, "  %4d  %s\n", line.Product.ID, line.Product.Name)
		for _, v := range line.Variants {
			fmt.Fprintf(s.out, "        %-28s x%-3d %8d\n", v.Variant.Name, v.Count, v.Variant.Price*int64(v.Count))
		}
	}
	fmt.Fprintf(s.out, "total: %d\n", state.Total())
}

func (s *session) runCheckout(ctx context.Context) {
	locations, err := s.client.FetchLocations(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "fetch locations: %v\n", err)
		return
	}
	for _, l := range locations {
		fmt.Fprintf(s.out, "  %d %s\n", l.ID, l.Name)
	}

	form := checkout.Form{
		Name:    s.prompt("name: "),
		Email:   s.prompt("email: "),
		Phone:   s.prompt("phone: "),
		Address: s.prompt("address: "),
		Notes:   s.prompt("notes: "),
	}
	form.LocationID, _ = strconv.ParseInt(s.prompt("location id: "), 10, 64)

	methods, err := s.client.FetchShipping(ctx, form.LocationID)
	if err != nil {
		fmt.Fprintf(s.out, "fetch shipping: %v\n", err)
		return
	}
	for _, m := range methods {
		fmt.Fprintf(s.out, "  %d %s (%d)\n", m.ID, m.Name, m.Price)
	}
	form.ShippingID, _ = strconv.ParseInt(s.prompt("shipping id: "), 10, 64)

	if err := s.checkout.Submit(ctx, form); err != nil {
		fmt.Fprintf(s.out, "checkout: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "order placed")
}

func (s *session) findProduct(id int64) (domain.Product, bool) {
	for _, p := range s.feed.Snapshot().Items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *session) prompt(label string) string {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}
