// Package storefront is the customer-facing controller: menu, size and
// double-portion dialogs, the custom builder, the cart and checkout.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pizza-deprizza/builder"
	"pizza-deprizza/cart"
	"pizza-deprizza/client"
	"pizza-deprizza/errs"
	"pizza-deprizza/models"
	"pizza-deprizza/pricing"
	"pizza-deprizza/ticket"
)

// Backend is the part of the order API the storefront uses.
type Backend interface {
	Menu(ctx context.Context) ([]models.MenuItem, error)
	CreateOrder(ctx context.Context, req client.CheckoutRequest) (client.CheckoutResponse, error)
	DeliveryStatus(ctx context.Context) (models.RestaurantStatus, error)
}

// SizeDialog is the open size picker for one menu item.
type SizeDialog struct {
	Item    models.MenuItem
	Name    string
	Double  string
	Choices []pricing.SizeChoice
}

// CheckoutResult describes a submitted order.
type CheckoutResult struct {
	Order      client.CheckoutResponse
	Total      int64
	Ticket     string
	TicketPath string
}

// Storefront owns the menu, cart, builder and dialogs of one customer session.
type Storefront struct {
	api       Backend
	log       *slog.Logger
	render    Renderer
	ticketDir string
	now       func() time.Time

	Cart    *cart.Cart
	Builder *builder.Builder

	mu          sync.Mutex
	menu        []models.MenuItem
	dialog      *SizeDialog
	double      *pricing.DoubleFlow
	banner      Banner
	checkingOut bool
}

// New returns a storefront with the built-in catalog loaded. Tickets are saved
// under ticketDir; an empty ticketDir disables saving.
func New(api Backend, r Renderer, log *slog.Logger, ticketDir string) *Storefront {
	if r == nil {
		r = NopRenderer{}
	}
	s := &Storefront{
		api:       api,
		log:       log.With("component", "storefront"),
		render:    r,
		ticketDir: ticketDir,
		now:       time.Now,
		Cart:      cart.New(),
		Builder:   builder.New(),
		menu:      models.DefaultMenu(),
		banner:    OfflineBanner,
	}
	s.Cart.SetChangeCallback(func(lines []models.CartLine) {
		r.Cart(lines, cart.Total(lines))
	})
	s.Builder.SetChangeCallback(r.Builder)
	return s
}

// LoadMenu replaces the catalog with the backend's. On failure the built-in
// catalog stays in place and the error is returned after notifying.
func (s *Storefront) LoadMenu(ctx context.Context) error {
	menu, err := s.api.Menu(ctx)
	if err != nil {
		s.log.Warn("menu unavailable, using built-in catalog", "error", err)
		s.mu.Lock()
		s.menu = models.DefaultMenu()
		items := s.menuLocked("")
		s.mu.Unlock()
		s.render.Menu(items)
		s.render.Notify(models.Notification{Level: models.LevelWarning, Message: "Menú sin conexión - usando catálogo local"})
		return fmt.Errorf("load menu: %w", err)
	}

	s.mu.Lock()
	s.menu = menu
	items := s.menuLocked("")
	s.mu.Unlock()
	s.render.Menu(items)
	return nil
}

// Menu returns the items of category filter, or every item for "all" or "".
func (s *Storefront) Menu(filter string) []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuLocked(filter)
}

func (s *Storefront) menuLocked(filter string) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		if filter == "" || filter == "all" || string(m.Category) == filter {
			out = append(out, m)
		}
	}
	return out
}

func (s *Storefront) itemLocked(id int64) (models.MenuItem, bool) {
	for _, m := range s.menu {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

// ChooseSize opens the size picker for a menu item. Unknown ids do nothing.
func (s *Storefront) ChooseSize(itemID int64) (SizeDialog, bool) {
	s.mu.Lock()
	item, ok := s.itemLocked(itemID)
	if !ok {
		s.mu.Unlock()
		return SizeDialog{}, false
	}
	d := s.openDialogLocked(item, "")
	s.mu.Unlock()

	s.render.SizeDialog(&d)
	return d, true
}

func (s *Storefront) openDialogLocked(item models.MenuItem, double string) SizeDialog {
	d := SizeDialog{
		Item:    item,
		Name:    pricing.DoubleName(item.Name, double),
		Double:  double,
		Choices: pricing.SizeChoices(item, double),
	}
	s.dialog = &d
	return d
}

// CloseSizeDialog dismisses the size picker without adding anything.
func (s *Storefront) CloseSizeDialog() {
	s.mu.Lock()
	s.dialog = nil
	s.mu.Unlock()
	s.render.SizeDialog(nil)
}

// SelectSize adds the item of the open size picker in size sizeKey to the cart
// and closes the picker.
func (s *Storefront) SelectSize(sizeKey string) (models.CartLine, error) {
	s.mu.Lock()
	if s.dialog == nil {
		s.mu.Unlock()
		return models.CartLine{}, errs.Invalid("size", "no hay pizza seleccionada")
	}
	size, ok := models.LookupSize(sizeKey)
	if !ok {
		s.mu.Unlock()
		return models.CartLine{}, errs.Invalid("size", "tamaño desconocido %q", sizeKey)
	}
	d := *s.dialog
	s.dialog = nil
	s.mu.Unlock()

	line, err := s.Cart.Add(models.CartLine{
		CartID:           cart.LineID(d.Item.ID, size.Key, d.Double),
		ItemID:           d.Item.ID,
		Name:             d.Name,
		Size:             size.Key,
		SizeLabel:        size.Label,
		UnitPrice:        pricing.UnitPrice(d.Item, size, d.Double),
		DoubleIngredient: d.Double,
	})
	s.render.SizeDialog(nil)
	if err != nil {
		return models.CartLine{}, err
	}
	s.render.Notify(models.Notification{
		Level:   models.LevelSuccess,
		Message: fmt.Sprintf("%s (%s) agregada al carrito", line.Name, line.SizeLabel),
	})
	return line, nil
}

// StartDouble opens the double-portion picker for a menu item and returns its
// candidates. An item with no candidates gets an informational notification
// and no picker.
func (s *Storefront) StartDouble(itemID int64) ([]string, bool) {
	s.mu.Lock()
	item, ok := s.itemLocked(itemID)
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	flow := pricing.NewDoubleFlow(item)
	if flow.Empty() {
		s.double = nil
		s.mu.Unlock()
		s.render.Notify(models.Notification{Level: models.LevelInfo, Message: pricing.NoDoubleCandidatesMessage})
		return []string{}, true
	}
	s.double = flow
	candidates := append([]string(nil), flow.Candidates...)
	s.mu.Unlock()
	return candidates, true
}

// SelectDouble picks the ingredient to double in the open picker.
func (s *Storefront) SelectDouble(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.double == nil {
		return errs.Invalid("ingredient", "no hay selección de doble porción abierta")
	}
	return s.double.Select(name)
}

// ConfirmDouble closes the double-portion picker and opens the size picker
// priced with the surcharge. Without a selection nothing changes.
func (s *Storefront) ConfirmDouble() (SizeDialog, error) {
	s.mu.Lock()
	if s.double == nil {
		s.mu.Unlock()
		return SizeDialog{}, errs.Invalid("ingredient", "no hay selección de doble porción abierta")
	}
	ing, err := s.double.Confirm()
	if err != nil {
		s.mu.Unlock()
		s.render.Notify(models.Notification{Level: models.LevelWarning, Message: errs.Message(err)})
		return SizeDialog{}, err
	}
	item := s.double.Item
	s.double = nil
	d := s.openDialogLocked(item, ing)
	s.mu.Unlock()

	s.render.SizeDialog(&d)
	return d, nil
}

// CancelDouble discards the double-portion picker.
func (s *Storefront) CancelDouble() {
	s.mu.Lock()
	s.double = nil
	s.mu.Unlock()
}

// AddCustomPizza adds the current custom build to the cart and resets the builder.
func (s *Storefront) AddCustomPizza() (models.CartLine, error) {
	line, err := s.Builder.Materialize()
	if err != nil {
		s.render.Notify(models.Notification{Level: models.LevelWarning, Message: errs.Message(err)})
		return models.CartLine{}, err
	}
	line, err = s.Cart.Add(line)
	if err != nil {
		return models.CartLine{}, err
	}
	s.render.Notify(models.Notification{
		Level:   models.LevelSuccess,
		Message: fmt.Sprintf("%s agregada al carrito - $%s", line.Name, pricing.Money(line.UnitPrice)),
	})
	return line, nil
}

// RemoveLine removes a cart line by its identifier.
func (s *Storefront) RemoveLine(cartID string) bool {
	return s.Cart.Remove(cartID)
}

// Checkout validates the session, renders the ticket and submits the order.
// The submitted lines leave the cart and the ticket is saved only when the
// backend accepts the order; on failure the cart is kept for a retry. Lines
// added while the request is in flight stay in the cart.
func (s *Storefront) Checkout(ctx context.Context, customer string, method models.PaymentMethod) (CheckoutResult, error) {
	customer = strings.TrimSpace(customer)
	lines := s.Cart.Lines()
	switch {
	case len(lines) == 0:
		return CheckoutResult{}, s.reject(errs.Invalid("cart", "Tu carrito está vacío"))
	case customer == "":
		return CheckoutResult{}, s.reject(errs.Invalid("customer", "Ingresa tu nombre"))
	case !method.IsValid():
		return CheckoutResult{}, s.reject(errs.Invalid("payment", "método de pago desconocido %q", method))
	}

	s.mu.Lock()
	if s.checkingOut {
		s.mu.Unlock()
		return CheckoutResult{}, s.reject(errs.Invalid("cart", "Ya hay un pedido en proceso"))
	}
	s.checkingOut = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.checkingOut = false
		s.mu.Unlock()
	}()

	at := s.now()
	total := cart.Total(lines)
	res := CheckoutResult{Total: total, Ticket: ticket.Generate(lines, customer, method, at)}

	order, err := s.api.CreateOrder(ctx, client.CheckoutRequest{
		Items:     lines,
		Total:     float64(total),
		Customer:  customer,
		Payment:   string(method),
		Timestamp: at,
	})
	if err != nil {
		s.log.Error("checkout failed", "error", err, "lines", len(lines), "total", total)
		s.render.Notify(models.Notification{Level: models.LevelError, Message: "No se pudo enviar el pedido, intenta de nuevo"})
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	res.Order = order
	s.Cart.Settle(lines)
	s.log.Info("order placed", "order_id", order.OrderID, "total", total, "customer", customer)

	if s.ticketDir != "" {
		path, err := ticket.Write(s.ticketDir, res.Ticket)
		if err != nil {
			s.log.Warn("ticket not saved", "error", err)
			s.render.Notify(models.Notification{Level: models.LevelWarning, Message: "No se pudo guardar el ticket"})
		}
		res.TicketPath = path
	}
	s.render.Notify(models.Notification{Level: models.LevelSuccess, Message: "✅ Pedido confirmado. Ticket generado."})
	return res, nil
}

func (s *Storefront) reject(err error) error {
	s.render.Notify(models.Notification{Level: models.LevelWarning, Message: errs.Message(err)})
	return err
}
