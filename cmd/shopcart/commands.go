package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/screens"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":           {"sign in and store the session", runLogin},
	"signup":          {"create an account", runSignup},
	"forgot-password": {"request a password reset email", runForgotPassword},
	"logout":          {"clear the stored session", runLogout},
	"dashboard":       {"show stats, chart and recent orders", runDashboard},
	"products":        {"list active products", runProducts},
	"product":         {"show one product of a page", runProduct},
	"create-product":  {"add a product", runCreateProduct},
	"orders":          {"list orders with summary cards", runOrders},
	"order":           {"show one order of a page", runOrder},
	"create-order":    {"place a cash-on-delivery order", runCreateOrder},
	"customers":       {"list and search customers", runCustomers},
	"create-customer": {"add a customer", runCreateCustomer},
	"update-customer": {"edit a customer", runUpdateCustomer},
	"delete-customer": {"remove a customer", runDeleteCustomer},
	"shippers":        {"list shipper pickup locations", runShippers},
	"create-shipper":  {"add a shipper pickup location", runCreateShipper},
	"update-shipper":  {"edit a shipper pickup location", runUpdateShipper},
	"delete-shipper":  {"remove a shipper pickup location", runDeleteShipper},
	"profile":         {"show or edit the profile", runProfile},
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printToasts(w io.Writer, toasts []notify.Toast) {
	for _, t := range toasts {
		fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Text)
	}
}

// gotoPage mounts a list and steps forward the way the pager buttons do.
func gotoPage(ctx context.Context, l interface {
	Mount(context.Context) error
	NextPage(context.Context) (bool, error)
}, page int) error {
	if err := l.Mount(ctx); err != nil {
		return err
	}
	for p := 1; p < page; p++ {
		moved, err := l.NextPage(ctx)
		if err != nil {
			return err
		}
		if !moved {
			break
		}
	}
	return nil
}

// --- Auth ---

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	res, err := screens.NewAuth(a.auth, a.router).Login(ctx, validation.LoginForm{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if res.User != nil {
		fmt.Printf("Signed in as %s <%s>\n", res.User.UserName, res.User.Email)
	}
	return nil
}

func runSignup(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (min 6 characters)")
	confirm := fs.String("confirm", "", "repeat the password")
	fs.Parse(args)

	_, err := screens.NewAuth(a.auth, a.router).Signup(ctx, validation.SignupForm{
		UserName:        *name,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	return err
}

func runForgotPassword(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	_, err := screens.NewAuth(a.auth, a.router).ForgotPassword(ctx, validation.ForgotPasswordForm{Email: *email})
	return err
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := screens.NewSettings(a.sessions, a.router).Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

// --- Dashboard ---

func runDashboard(ctx context.Context, a *app, _ []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	s := screens.NewDashboard(a.dashboard, a.orders, a.store, a.router, a.cfg.PageLimit)
	if err := s.Mount(ctx); err != nil {
		return err
	}
	stats, _ := s.Stats()
	fmt.Printf("New orders today: %d (%.1f%%)\n", stats.NewOrders.TodayOrders, stats.NewOrders.TotalPercentage)
	fmt.Printf("Total sales:      %.2f (%.1f%%)\n", stats.TotalSales.TotalSales, stats.TotalSales.TotalPercentage)
	fmt.Printf("Total revenue:    %.2f (%.1f%%)\n", stats.TotalRevenue.TotalRevenue, stats.TotalRevenue.TotalPercentage)

	fmt.Println("\nChart")
	chart := s.Chart()
	for i, label := range screens.ChartLabels {
		fmt.Printf("  %-8s %10.2f\n", label, chart[i])
	}

	fmt.Println("\nRecent orders")
	tw := newTable(os.Stdout)
	fmt.Fprintln(tw, "ORDER\tSTATUS\tPAYMENT\tTOTAL")
	for _, o := range s.RecentOrders() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", screens.OrderTitle(o), o.Status, o.Payment, o.Pricing.TotalPrice)
	}
	tw.Flush()

	fmt.Println("\nTop products")
	tw = newTable(os.Stdout)
	fmt.Fprintln(tw, "PRODUCT\tSOLD")
	for _, p := range s.TopProducts() {
		fmt.Fprintf(tw, "%s\t%d\n", p.Product.Name, p.TotalSold)
	}
	return tw.Flush()
}

// --- Products ---

func runProducts(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := screens.NewProducts(a.products, a.store, a.router, a.cfg.PageLimit)
	if err := gotoPage(ctx, s, *page); err != nil {
		return err
	}
	tw := newTable(os.Stdout)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tAVAILABLE\tCATEGORY")
	for _, p := range s.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%d\t%s / %s\n", p.ID, p.Name, p.Price, p.Stock, p.Available, p.Category, p.SubCategory)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPager(s.Pager().Page, s.Pager().TotalPages, s.Snapshot().Total)
	return nil
}

func runProduct(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	page := fs.Int("page", 1, "page the product is on")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := screens.NewProducts(a.products, a.store, a.router, a.cfg.PageLimit)
	if err := gotoPage(ctx, s, *page); err != nil {
		return err
	}
	d, ok := s.Open(*id)
	if !ok {
		return fmt.Errorf("product %q is not on page %d", *id, *page)
	}
	p := d.Product
	fmt.Printf("%s\n", p.Name)
	fmt.Printf("Price:     %.2f (was %.2f)\n", p.Price, d.ListPrice)
	fmt.Printf("Stock:     %s, %d available of %d\n", d.Status, p.Available, p.Stock)
	fmt.Printf("Category:  %s / %s\n", p.Category, p.SubCategory)
	fmt.Printf("\n%s\n", d.Description)
	return nil
}

func runCreateProduct(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-product", flag.ExitOnError)
	var form validation.CreateProductForm
	fs.StringVar(&form.Name, "name", "", "product name")
	fs.StringVar(&form.Description, "description", "", "description")
	price := fs.Float64("price", 0, "unit price")
	stock := fs.Int("stock", 0, "units in stock")
	fs.StringVar(&form.Category, "category", "", "category")
	fs.StringVar(&form.SubCategory, "subcategory", "", "subcategory")
	fs.StringVar(&form.Image, "image", "", "image URL or data URI")
	fs.Parse(args)
	// Unset flags stay nil so the form reports them as missing.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "price":
			form.Price = price
		case "stock":
			form.Stock = stock
		}
	})
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	screens.NewProducts(a.products, a.store, a.router, a.cfg.PageLimit).OpenCreate()
	_, err := screens.NewCreateProduct(a.products).Submit(ctx, form)
	return err
}

// --- Orders ---

func runOrders(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	status := fs.String("status", "", "show only this order status")
	payment := fs.String("payment", "", "show only this payment status")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := screens.NewOrders(a.orders, a.store, a.router, a.cfg.PageLimit)
	if err := gotoPage(ctx, s, *page); err != nil {
		return err
	}
	s.SetFilter(screens.OrderFilter{Status: models.OrderStatus(*status), Payment: models.PaymentStatus(*payment)})

	for _, card := range s.SummaryCards() {
		fmt.Printf("%-14s %d\n", card.Title+":", card.Value)
	}
	fmt.Println()
	tw := newTable(os.Stdout)
	fmt.Fprintln(tw, "ID\tORDER\tSTATUS\tPAYMENT\tTOTAL\tPLACED")
	for _, o := range s.Visible() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n", o.ID, screens.OrderTitle(o), o.Status, o.Payment,
			o.Pricing.TotalPrice, o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPager(s.Pager().Page, s.Pager().TotalPages, s.Snapshot().Total)
	return nil
}

func runOrder(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	page := fs.Int("page", 1, "page the order is on")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := screens.NewOrders(a.orders, a.store, a.router, a.cfg.PageLimit)
	if err := gotoPage(ctx, s, *page); err != nil {
		return err
	}
	o, ok := s.Order(*id)
	if !ok {
		return fmt.Errorf("order %q is not on page %d", *id, *page)
	}
	d := o.ShipmentDetails
	fmt.Printf("%s  (#%s)\n", screens.OrderTitle(o), screens.ShortID(o.ID))
	fmt.Printf("Status:   %s / payment %s (%s)\n", o.Status, o.Payment, o.PaymentMethod)
	fmt.Printf("Ship to:  %s, %s, %s\n", d.Name, d.Address, d.City)
	fmt.Printf("Contact:  %s  %s\n", d.Phone, d.Email)
	fmt.Printf("Shipper:  %s\n", d.ShipperCity)
	if o.TrackingID != nil {
		fmt.Printf("Tracking: %s\n", *o.TrackingID)
	}
	for _, item := range o.Products {
		fmt.Printf("  - %s x%d\n", item.ProductID, item.ProductQty)
	}
	p := o.Pricing
	fmt.Printf("Subtotal %.2f + tax %.2f + shipping %.2f = %.2f (paid %.2f)\n", p.SubTotal, p.OrderTax, p.Shipping, p.TotalPrice, p.Paid)
	return nil
}

func runCreateOrder(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-order", flag.ExitOnError)
	productID := fs.String("product", "", "product id")
	price := fs.Float64("price", 0, "unit price of the product")
	quantity := fs.Int("quantity", 1, "quantity")
	tax := fs.Float64("tax", 0, "order tax")
	shipping := fs.Float64("shipping", 0, "shipping charge")
	promo := fs.String("promo", "", "promo code")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	city := fs.String("city", "", "customer city")
	address := fs.String("address", "", "delivery address")
	shipper := fs.String("shipper", "", "shipper city (defaults to the first shipper)")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	screens.NewOrders(a.orders, a.store, a.router, a.cfg.PageLimit).OpenCreate()
	s := screens.NewCreateOrder(a.orders, a.shippers, a.store, a.router, *productID, *price)
	defer s.Close()
	if err := s.Mount(ctx); err != nil {
		return err
	}
	form := s.Form()
	form.Quantity = *quantity
	form.OrderTax = *tax
	form.Shipping = *shipping
	form.PromoCode = *promo
	form.ShipmentDetails.Name = *name
	form.ShipmentDetails.Email = *email
	form.ShipmentDetails.Phone = *phone
	form.ShipmentDetails.City = *city
	form.ShipmentDetails.Address = *address
	if *shipper != "" {
		form.SelectedShipper = *shipper
		form.ShipmentDetails.ShipperCity = *shipper
	}

	p := s.Pricing(form)
	fmt.Printf("Subtotal %.2f, total %.2f\n", p.SubTotal, p.TotalPrice)
	_, err := s.Submit(ctx, form)
	return err
}

// --- Customers ---

func runCustomers(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("customers", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "filter by name, city or phone")
	view := fs.String("view", string(screens.ViewCards), "cards or table")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := screens.NewCustomers(a.customers, a.store, a.cfg.PageLimit)
	if err := gotoPage(ctx, s, *page); err != nil {
		return err
	}
	s.SetSearch(*search)
	s.SetViewMode(screens.ViewMode(*view))

	if s.ViewMode() == screens.ViewTable {
		tw := newTable(os.Stdout)
		fmt.Fprintln(tw, "NAME\tCITY\tPHONE\tORDERS\tSPENT")
		for _, c := range s.Visible() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\n", c.CustomerName, c.City, c.Phone, c.TotalOrders, c.TotalSpent)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	} else {
		for _, c := range s.Visible() {
			fmt.Printf("%s\n  %s, %s\n  %d orders, %.2f spent\n\n", c.CustomerName, c.City, c.Phone, c.TotalOrders, c.TotalSpent)
		}
	}
	printPager(s.Pager().Page, s.Pager().TotalPages, s.Snapshot().Total)
	return nil
}

func customerFlags(fs *flag.FlagSet) *validation.CustomerForm {
	var form validation.CustomerForm
	fs.StringVar(&form.CustomerName, "name", "", "customer name")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.Phone, "phone", "", "phone number")
	return &form
}

func runCreateCustomer(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-customer", flag.ExitOnError)
	form := customerFlags(fs)
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	_, err := screens.NewCustomers(a.customers, a.store, a.cfg.PageLimit).Add(ctx, *form)
	return err
}

func runUpdateCustomer(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("update-customer", flag.ExitOnError)
	id := fs.String("id", "", "customer id")
	form := customerFlags(fs)
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("-id is required")
	}
	_, err := screens.NewCustomers(a.customers, a.store, a.cfg.PageLimit).Edit(ctx, *id, *form)
	return err
}

func runDeleteCustomer(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete-customer", flag.ExitOnError)
	id := fs.String("id", "", "customer id")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("-id is required")
	}
	_, err := screens.NewCustomers(a.customers, a.store, a.cfg.PageLimit).Remove(ctx, *id)
	return err
}

// --- Shippers ---

func shipperFlags(fs *flag.FlagSet) *validation.ShipperForm {
	var form validation.ShipperForm
	fs.StringVar(&form.StoreName, "store", "", "store name")
	fs.StringVar(&form.LocationName, "location", "", "pickup location name")
	fs.StringVar(&form.Address, "address", "", "pickup address")
	fs.StringVar(&form.ReturnAddress, "return-address", "", "return address")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number (11-13 digits)")
	return &form
}

func runShippers(ctx context.Context, a *app, _ []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	screens.NewSettings(a.sessions, a.router).OpenShipper()
	s := screens.NewShipper(a.shippers, a.store)
	if err := s.Mount(ctx); err != nil {
		return err
	}
	tw := newTable(os.Stdout)
	fmt.Fprintln(tw, "ID\tSTORE\tLOCATION\tCITY\tPHONE")
	for _, sh := range s.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", sh.ID, sh.StoreName, sh.LocationName, sh.City, sh.PhoneNumber)
	}
	return tw.Flush()
}

func runCreateShipper(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-shipper", flag.ExitOnError)
	form := shipperFlags(fs)
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	_, err := screens.NewShipper(a.shippers, a.store).Add(ctx, *form)
	return err
}

func runUpdateShipper(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("update-shipper", flag.ExitOnError)
	id := fs.String("id", "", "shipper id")
	form := shipperFlags(fs)
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("-id is required")
	}
	_, err := screens.NewShipper(a.shippers, a.store).Edit(ctx, *id, *form)
	return err
}

func runDeleteShipper(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete-shipper", flag.ExitOnError)
	id := fs.String("id", "", "shipper id")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("-id is required")
	}
	_, err := screens.NewShipper(a.shippers, a.store).Remove(ctx, *id)
	return err
}

// --- Profile ---

func runProfile(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone number")
	address := fs.String("address", "", "new address")
	fs.Parse(args)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	screens.NewSettings(a.sessions, a.router).OpenProfile()
	s := screens.NewProfile(a.auth, a.sessions)
	form, err := s.Mount(ctx)
	if err != nil {
		return err
	}
	if *name != "" {
		form.Name = *name
	}
	if *email != "" {
		form.Email = *email
	}
	if *phone != "" {
		form.PhoneNumber = *phone
	}
	if *address != "" {
		form.Address = *address
	}
	if !s.Changed(form) {
		fmt.Printf("Name:    %s\nEmail:   %s\nPhone:   %s\nAddress: %s\n", form.Name, form.Email, form.PhoneNumber, form.Address)
		return nil
	}
	return s.Submit(ctx, form)
}

func printPager(page, totalPages, total int) {
	fmt.Printf("\nPage %d of %d (%d total)\n", page, totalPages, total)
}
