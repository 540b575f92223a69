// cmd/storefront/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/auth"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/vendor"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
	"github.com/your-org/storefront-client/internal/pkg/deeplink"
	"github.com/your-org/storefront-client/internal/pkg/logger"
	"github.com/your-org/storefront-client/internal/pkg/receipt"
	"github.com/your-org/storefront-client/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)

	// Pick the session store backend
	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		redisStore, err := session.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis session store: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = session.NewFileStore(cfg.Session.FilePath)
	}

	// Restore any persisted session before the first request
	sessions := session.NewManager(store)
	ctx, cancel := signalContext()
	defer cancel()

	if err := sessions.Restore(ctx); err != nil {
		appLogger.WithError(err).Warn("Could not restore session, starting logged out")
	}

	client := api.New(cfg, sessions, appLogger)

	app := &app{
		cfg:        cfg,
		sessions:   sessions,
		authSvc:    auth.NewService(client, sessions, appLogger),
		cartSvc:    cart.NewService(client, appLogger),
		addressSvc: address.NewService(client, cfg, appLogger),
		checkout:   checkout.NewService(client, appLogger),
		orderSvc:   order.NewService(client, cfg, appLogger),
		productSvc: product.NewService(client, appLogger),
		vendorSvc:  vendor.NewService(client, appLogger),
		wishSvc:    wishlist.NewService(client, appLogger),
		links:      deeplink.NewParser(cfg),
		receipts:   receipt.NewService(cfg),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

type app struct {
	cfg        *config.Config
	sessions   *session.Manager
	authSvc    *auth.Service
	cartSvc    *cart.Service
	addressSvc *address.Service
	checkout   *checkout.Service
	orderSvc   *order.Service
	productSvc *product.Service
	vendorSvc  *vendor.Service
	wishSvc    *wishlist.Service
	links      *deeplink.Parser
	receipts   *receipt.Service
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.authSvc.Logout(ctx)
	case "whoami":
		if user := a.sessions.User(); user != nil {
			return printJSON(user)
		}
		fmt.Println("Not logged in")
		return nil
	case "products":
		return a.products(ctx, args)
	case "cart":
		return a.showCart(ctx)
	case "add":
		return a.addToCart(ctx, args)
	case "coupon":
		return a.applyCoupon(ctx, args)
	case "checkout":
		return a.runCheckout(ctx, args)
	case "orders":
		return a.orders(ctx)
	case "track":
		return a.track(ctx, args)
	case "simulate":
		return a.simulate(ctx, args)
	case "receipt":
		return a.receipt(ctx, args)
	case "wishlist":
		return a.wishlist(ctx, args)
	case "open":
		return a.open(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	user, err := a.authSvc.Login(ctx, &auth.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("Logged in as %s %s\n", user.FirstName, user.LastName)
	}
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	limit := fs.Int("limit", 20, "page size")
	_ = fs.Parse(args)

	products, err := a.productSvc.List(ctx, product.ListOptions{Search: *search, Limit: *limit})
	if err != nil {
		return err
	}
	return printJSON(products)
}

func (a *app) showCart(ctx context.Context) error {
	c, err := a.cartSvc.Get(ctx)
	if err != nil {
		return err
	}
	if err := printJSON(c); err != nil {
		return err
	}
	fmt.Printf("Total (delivery added at checkout): %d\n", c.DisplayTotal())
	return nil
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	productID := fs.Uint("product", 0, "product id")
	quantity := fs.Int("qty", 1, "quantity")
	_ = fs.Parse(args)

	if *productID == 0 {
		return fmt.Errorf("-product is required")
	}

	c, err := a.cartSvc.Add(ctx, &cart.AddItemRequest{ProductID: uint(*productID), Quantity: *quantity})
	if err != nil {
		return err
	}
	fmt.Printf("Cart now holds %d item(s), total %d\n", c.TotalQuantity(), c.DisplayTotal())
	return nil
}

func (a *app) applyCoupon(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coupon", flag.ExitOnError)
	code := fs.String("code", "", "coupon code")
	remove := fs.Bool("remove", false, "remove the applied coupon")
	_ = fs.Parse(args)

	var (
		c   *cart.Cart
		err error
	)
	if *remove {
		c, err = a.cartSvc.RemoveCoupon(ctx)
	} else {
		c, err = a.cartSvc.ApplyCoupon(ctx, *code)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Discount %d, total %d\n", c.Discount, c.DisplayTotal())
	return nil
}

// runCheckout walks the three-step flow non-interactively: address,
// delivery option, payment method, submit.
func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	addressID := fs.Uint("address", 0, "address id (default: the default address)")
	optionID := fs.String("option", "", "delivery option id (default: auto-selected)")
	payment := fs.String("payment", string(checkout.PaymentCashOnDelivery), "payment method: card, wallet or cash_on_delivery")
	notes := fs.String("notes", "", "order notes")
	_ = fs.Parse(args)

	c, err := a.cartSvc.Get(ctx)
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return fmt.Errorf("cart is empty")
	}

	flow := checkout.NewFlow(c)

	// Step 1: address
	addresses, err := a.addressSvc.List(ctx)
	if err != nil {
		return err
	}
	selected := pickAddress(addresses, uint(*addressID))
	if selected == nil {
		return fmt.Errorf("no delivery address available; create one first")
	}
	flow.SelectAddress(selected)
	if err := flow.Advance(); err != nil {
		return err
	}

	// Step 2: delivery rates for that address
	if err := a.checkout.LoadRates(ctx, flow); err != nil {
		return err
	}
	if !flow.LiveRates() {
		fmt.Println("Live delivery rates were unavailable; standard options shown")
	}
	if *optionID != "" {
		if err := flow.SelectOption(*optionID); err != nil {
			return err
		}
	}
	if err := flow.Advance(); err != nil {
		return err
	}

	// Step 3: payment and submission
	if err := flow.SelectPayment(checkout.PaymentMethod(*payment)); err != nil {
		return err
	}
	flow.SetNotes(*notes)

	fmt.Printf("Delivery %s (%d), order total %d\n",
		flow.SelectedOption().Type, flow.DeliveryFee(), flow.Total())

	conf, err := a.checkout.Submit(ctx, flow)
	if err != nil {
		return fmt.Errorf("%s", api.ServerMessage(err, "Could not place your order, please try again"))
	}

	if conf.Order != nil {
		fmt.Printf("Order %s placed\n", conf.Order.OrderNumber)
	}
	if conf.Payment != nil && conf.Payment.AuthorizationURL != "" {
		fmt.Printf("Complete payment at: %s\n", conf.Payment.AuthorizationURL)
	}
	return nil
}

func (a *app) orders(ctx context.Context) error {
	orders, err := a.orderSvc.List(ctx, 1, 20)
	if err != nil {
		return err
	}
	return printJSON(orders)
}

func (a *app) track(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	orderID := fs.Uint("order", 0, "order id")
	_ = fs.Parse(args)

	if *orderID == 0 {
		return fmt.Errorf("-order is required")
	}

	tracking, err := a.orderSvc.Tracking(ctx, uint(*orderID))
	if err != nil {
		return err
	}
	return printJSON(tracking)
}

func (a *app) simulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	orderID := fs.Uint("order", 0, "order id")
	status := fs.String("status", "", "confirmed, picked_up, in_transit or completed")
	_ = fs.Parse(args)

	if *orderID == 0 || *status == "" {
		return fmt.Errorf("both -order and -status are required")
	}

	ord, err := a.orderSvc.SimulateStatus(ctx, uint(*orderID), order.Status(*status))
	if err != nil {
		return err
	}
	fmt.Printf("Order %s is now %s\n", ord.OrderNumber, ord.Status)
	return nil
}

func (a *app) receipt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	orderID := fs.Uint("order", 0, "order id")
	out := fs.String("out", "receipt.pdf", "output file")
	_ = fs.Parse(args)

	if *orderID == 0 {
		return fmt.Errorf("-order is required")
	}

	ord, err := a.orderSvc.Get(ctx, uint(*orderID))
	if err != nil {
		return err
	}

	pdf, err := a.receipts.Generate(ord)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, pdf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}

	fmt.Printf("Receipt for order %s written to %s\n", ord.OrderNumber, *out)
	return nil
}

func (a *app) wishlist(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wishlist", flag.ExitOnError)
	toCart := fs.Uint("to-cart", 0, "move this wishlist item into the cart")
	remove := fs.Uint("remove", 0, "remove this wishlist item")
	_ = fs.Parse(args)

	switch {
	case *toCart != 0:
		c, err := a.wishSvc.MoveToCart(ctx, uint(*toCart))
		if err != nil {
			return err
		}
		fmt.Printf("Cart now holds %d item(s), total %d\n", c.TotalQuantity(), c.DisplayTotal())
		return nil
	case *remove != 0:
		items, err := a.wishSvc.Remove(ctx, uint(*remove))
		if err != nil {
			return err
		}
		return printJSON(items)
	default:
		items, err := a.wishSvc.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(items)
	}
}

// open resolves a deep link and fetches what it points at
func (a *app) open(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: open <url>")
	}

	route, err := a.links.Parse(args[0])
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(route.ID, 10, 32)
	if err != nil {
		return fmt.Errorf("deep link id %q is not numeric", route.ID)
	}

	switch route.Kind {
	case deeplink.KindVendor:
		v, err := a.vendorSvc.Get(ctx, uint(id))
		if err != nil {
			return err
		}
		return printJSON(v)
	case deeplink.KindProduct:
		p, err := a.productSvc.Get(ctx, uint(id))
		if err != nil {
			return err
		}
		return printJSON(p)
	}
	return fmt.Errorf("unsupported deep link target %q", route.Kind)
}

// pickAddress resolves the requested address, preferring the explicit
// id, then the default, then the first saved address
func pickAddress(addresses []address.Address, id uint) *address.Address {
	for i := range addresses {
		if id != 0 && addresses[i].ID == id {
			return &addresses[i]
		}
	}
	if id != 0 {
		return nil
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i]
		}
	}
	if len(addresses) > 0 {
		return &addresses[0]
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()
	return ctx, cancel
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: storefront <command> [flags]

Commands:
  login -email <email> -password <password>
  logout
  whoami
  products [-search term] [-limit n]
  cart
  add -product <id> [-qty n]
  coupon -code <code> | -remove
  checkout [-address id] [-option id] [-payment method] [-notes text]
  orders
  track -order <id>
  simulate -order <id> -status <status>   (sandbox only)
  receipt -order <id> [-out file]
  wishlist [-to-cart id] [-remove id]
  open <url>`)
}
