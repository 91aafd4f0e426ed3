package kitchen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pizza-deprizza/client"
	"pizza-deprizza/errs"
	"pizza-deprizza/models"
	"pizza-deprizza/statemachine"
)

// ReadyDeselectDelay is how long a freshly readied order stays selected.
const ReadyDeselectDelay = 2 * time.Second

// OrdersAPI is the part of the backend the dashboard needs.
type OrdersAPI interface {
	AdminOrders(ctx context.Context) (client.OrderList, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

// View is what the dashboard renders: the filtered and sorted orders, the
// current selection and the statistics over every active order.
type View struct {
	Orders   []models.Order
	Selected *models.Order
	Stats    Statistics
	Filter   string
	Sort     SortKey
	Offline  bool
}

// Intervals configures the background loops of Run.
type Intervals struct {
	Refresh time.Duration
	Guard   time.Duration
	Derived time.Duration
	Stats   time.Duration
}

// DefaultIntervals mirror the staff panel cadence.
var DefaultIntervals = Intervals{
	Refresh: 10 * time.Second,
	Guard:   5 * time.Second,
	Derived: 60 * time.Second,
	Stats:   5 * time.Second,
}

// Dashboard owns the kitchen's copy of the active orders.
type Dashboard struct {
	api OrdersAPI
	log *slog.Logger

	now       func() time.Time
	afterFunc func(time.Duration, func())

	mu          sync.Mutex
	orders      []models.Order
	selected    int64
	filter      string
	sortKey     SortKey
	stats       Statistics
	offline     bool
	generation  uint64
	lastRefresh time.Time
	onRender    func(View)
	onNotify    func(models.Notification)
}

// NewDashboard returns an empty dashboard backed by api.
func NewDashboard(api OrdersAPI, log *slog.Logger) *Dashboard {
	return &Dashboard{
		api:     api,
		log:     log.With("component", "kitchen"),
		now:     time.Now,
		filter:  FilterAll,
		sortKey: SortByTime,
		afterFunc: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// SetRenderCallback registers the function receiving every new view.
func (d *Dashboard) SetRenderCallback(fn func(View)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onRender = fn
}

// SetNotifyCallback registers the function receiving notifications.
func (d *Dashboard) SetNotifyCallback(fn func(models.Notification)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onNotify = fn
}

// View returns the current view.
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

// Refresh replaces the local orders with the backend's active orders. On
// failure the orders already shown are kept, or the offline sample orders when
// nothing was loaded yet. A response that arrives
// after a newer refresh or status change has been applied is dropped.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.mu.Unlock()

	list, err := d.api.AdminOrders(ctx)

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		d.log.Debug("dropping stale refresh", "generation", gen)
		return nil
	}
	now := d.now()
	d.lastRefresh = now

	var note models.Notification
	if err != nil {
		note = models.Notification{Level: models.LevelWarning, Message: "Error de conexión - usando datos de prueba"}
		if len(d.orders) > 0 {
			d.log.Warn("refresh failed, keeping last orders", "error", err, "orders", len(d.orders))
			note.Message = "Error de conexión - mostrando últimas órdenes"
			Derive(d.orders, now)
		} else {
			d.log.Warn("refresh failed, showing sample orders", "error", err)
			d.orders = SampleOrders(now)
		}
		var se *errs.StatusError
		if errors.As(err, &se) {
			note = models.Notification{Level: models.LevelError, Message: "Error al cargar órdenes del servidor"}
		}
		d.offline = true
	} else {
		active := Active(list.Orders)
		Derive(active, now)
		d.orders = active
		d.offline = false
		if len(active) > 0 {
			note = models.Notification{Level: models.LevelSuccess, Message: fmt.Sprintf("%d órdenes activas cargadas", len(active))}
		}
		for _, reason := range list.Skipped {
			d.log.Warn("order entry skipped", "reason", reason)
		}
		if len(list.Skipped) > 0 {
			note = models.Notification{
				Level:   models.LevelWarning,
				Message: fmt.Sprintf("%d órdenes activas cargadas, %d ignoradas por datos inválidos", len(active), len(list.Skipped)),
			}
		}
		d.log.Debug("orders refreshed", "active", len(active), "received", len(list.Orders), "skipped", len(list.Skipped))
	}
	if d.indexLocked(d.selected) < 0 {
		d.selected = 0
	}
	d.stats = Stats(d.orders, now)
	view, render, notify := d.viewLocked(), d.onRender, d.onNotify
	d.mu.Unlock()

	emit(render, view)
	if note.Message != "" {
		send(notify, note)
	}
	if err != nil {
		return fmt.Errorf("refresh orders: %w", err)
	}
	return nil
}

// SelectOrder makes the order with id the target of status actions.
func (d *Dashboard) SelectOrder(id int64) error {
	d.mu.Lock()
	if d.indexLocked(id) < 0 {
		d.mu.Unlock()
		return errs.Invalid("order", "la orden #%d no está activa", id)
	}
	d.selected = id
	view, render, notify := d.viewLocked(), d.onRender, d.onNotify
	d.mu.Unlock()

	emit(render, view)
	send(notify, models.Notification{Level: models.LevelSuccess, Message: fmt.Sprintf("Orden #%d seleccionada", id)})
	return nil
}

// Deselect clears the selection.
func (d *Dashboard) Deselect() {
	d.mu.Lock()
	d.selected = 0
	view, render := d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
}

// UpdateStatus moves the selected order forward to status. When the backend
// cannot be reached the change is kept locally with Synced=false, a warning is
// sent and the backend error is returned. A change the backend refuses, or one
// that would move an order that advanced meanwhile backwards, is dropped.
func (d *Dashboard) UpdateStatus(ctx context.Context, status models.OrderStatus) error {
	d.mu.Lock()
	idx := d.indexLocked(d.selected)
	if idx < 0 {
		notify := d.onNotify
		d.mu.Unlock()
		send(notify, models.Notification{Level: models.LevelWarning, Message: "No hay orden seleccionada"})
		return errs.Invalid("order", "no hay orden seleccionada")
	}
	id, from := d.orders[idx].ID, d.orders[idx].Status
	if err := statemachine.CanTransition(from, status); err != nil {
		notify := d.onNotify
		d.mu.Unlock()
		send(notify, models.Notification{Level: models.LevelError, Message: err.Error()})
		return errs.Invalid("status", "%s", err.Error())
	}
	d.mu.Unlock()

	err := d.api.UpdateOrderStatus(ctx, id, status)

	d.mu.Lock()
	// Anything fetched before this point predates the change.
	d.generation++
	idx = d.indexLocked(id)
	if reject := d.rejectLocked(idx, status, err); reject != nil {
		notify := d.onNotify
		d.mu.Unlock()
		d.log.Warn("status update rejected", "order_id", id, "status", status, "error", reject)
		send(notify, models.Notification{
			Level:   models.LevelError,
			Message: fmt.Sprintf("Orden #%d no actualizada: %s", id, errs.Message(reject)),
		})
		return fmt.Errorf("update order %d: %w", id, reject)
	}
	now := d.now()
	if idx >= 0 {
		o := &d.orders[idx]
		o.Status = status
		o.Progress = Progress(status)
		o.Priority = PriorityOf(*o, now)
		o.Synced = err == nil
	}
	d.stats = Stats(d.orders, now)
	view, render, notify := d.viewLocked(), d.onRender, d.onNotify
	d.mu.Unlock()

	emit(render, view)
	if err != nil {
		d.log.Warn("status update kept locally", "order_id", id, "status", status, "error", err)
		send(notify, models.Notification{
			Level:   models.LevelWarning,
			Message: fmt.Sprintf("Orden #%d actualizada localmente (sin conexión al servidor)", id),
		})
		return fmt.Errorf("update order %d: %w", id, err)
	}

	d.log.Info("order status updated", "order_id", id, "from", from, "to", status)
	send(notify, models.Notification{
		Level:   models.LevelSuccess,
		Message: fmt.Sprintf("Orden #%d actualizada a %s", id, StatusText(status)),
	})
	if status == models.StatusReady {
		d.afterFunc(ReadyDeselectDelay, func() { d.deselectIfSelected(id) })
	}
	return nil
}

// rejectLocked reports why a finished status update must not be applied: the
// backend refused it, or the order moved on while the request was in flight.
func (d *Dashboard) rejectLocked(idx int, status models.OrderStatus, apiErr error) error {
	var se *errs.StatusError
	if errors.As(apiErr, &se) && se.Code >= 400 && se.Code < 500 {
		return errs.Invalid("status", "el servidor rechazó el cambio (%d)", se.Code)
	}
	if idx < 0 {
		return nil
	}
	current := d.orders[idx].Status
	if current == status {
		return nil
	}
	if err := statemachine.CanTransition(current, status); err != nil {
		return errs.Invalid("status", "la orden ya está en %s", StatusText(current))
	}
	return nil
}

func (d *Dashboard) deselectIfSelected(id int64) {
	d.mu.Lock()
	if d.selected != id {
		d.mu.Unlock()
		return
	}
	d.selected = 0
	view, render := d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
}

// HandleKey maps the panel shortcuts: 1 preparing, 2 cooking, 3 ready and
// Escape to deselect. Keys are ignored while nothing is selected.
func (d *Dashboard) HandleKey(ctx context.Context, key string) error {
	d.mu.Lock()
	hasSelection := d.selected != 0
	d.mu.Unlock()
	if !hasSelection {
		return nil
	}

	switch key {
	case "1":
		return d.UpdateStatus(ctx, models.StatusPreparing)
	case "2":
		return d.UpdateStatus(ctx, models.StatusCooking)
	case "3":
		return d.UpdateStatus(ctx, models.StatusReady)
	case "Escape":
		d.Deselect()
	}
	return nil
}

// SetFilter restricts the rendered orders to one status, or FilterAll.
func (d *Dashboard) SetFilter(filter string) {
	d.mu.Lock()
	d.filter = filter
	view, render := d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
}

// SetSort changes the rendered ordering.
func (d *Dashboard) SetSort(key SortKey) {
	d.mu.Lock()
	d.sortKey = key
	view, render := d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
}

// RecomputeDerived refreshes progress and priority without a fetch.
func (d *Dashboard) RecomputeDerived() {
	d.mu.Lock()
	if len(d.orders) == 0 {
		d.mu.Unlock()
		return
	}
	now := d.now()
	Derive(d.orders, now)
	d.stats = Stats(d.orders, now)
	view, render := d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
}

// RecomputeStats rebuilds the statistics from the current orders.
func (d *Dashboard) RecomputeStats() Statistics {
	d.mu.Lock()
	d.stats = Stats(d.orders, d.now())
	st, view, render := d.stats, d.viewLocked(), d.onRender
	d.mu.Unlock()
	emit(render, view)
	return st
}

// Run refreshes once and then keeps the dashboard current until ctx is done.
// A scheduled refresh is skipped when the last one completed less than
// iv.Guard ago.
func (d *Dashboard) Run(ctx context.Context, iv Intervals) error {
	if iv.Refresh <= 0 || iv.Derived <= 0 || iv.Stats <= 0 {
		return fmt.Errorf("kitchen: intervals must be positive: %+v", iv)
	}
	_ = d.Refresh(ctx)

	refresh := time.NewTicker(iv.Refresh)
	defer refresh.Stop()
	derived := time.NewTicker(iv.Derived)
	defer derived.Stop()
	stats := time.NewTicker(iv.Stats)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("dashboard stopped")
			return nil
		case <-refresh.C:
			if d.refreshDue(iv.Guard) {
				_ = d.Refresh(ctx)
			}
		case <-derived.C:
			d.RecomputeDerived()
		case <-stats.C:
			d.RecomputeStats()
		}
	}
}

func (d *Dashboard) refreshDue(guard time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRefresh.IsZero() || d.now().Sub(d.lastRefresh) >= guard
}

func (d *Dashboard) indexLocked(id int64) int {
	if id == 0 {
		return -1
	}
	for i := range d.orders {
		if d.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Dashboard) viewLocked() View {
	v := View{
		Orders:  Sort(FilterByStatus(d.orders, d.filter), d.sortKey),
		Stats:   d.stats,
		Filter:  d.filter,
		Sort:    d.sortKey,
		Offline: d.offline,
	}
	if i := d.indexLocked(d.selected); i >= 0 {
		sel := d.orders[i]
		sel.Items = append([]models.OrderItem(nil), sel.Items...)
		v.Selected = &sel
	}
	return v
}

func emit(fn func(View), v View) {
	if fn != nil {
		fn(v)
	}
}

func send(fn func(models.Notification), n models.Notification) {
	if fn != nil {
		fn(n)
	}
}
