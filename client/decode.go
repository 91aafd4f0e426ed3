package client

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"pizza-deprizza/errs"
	"pizza-deprizza/models"
)

type rawOrder struct {
	ID            flexNumber      `json:"id"`
	Items         json.RawMessage `json:"items"`
	Total         flexNumber      `json:"total"`
	EstimatedTime flexNumber      `json:"estimated_time"`
	Customer      flexString      `json:"customer"`
	CustomerName  flexString      `json:"customer_name"`
	Payment       flexString      `json:"payment"`
	PaymentMethod flexString      `json:"payment_method"`
	Status        flexString      `json:"status"`
	CreatedAt     flexString      `json:"created_at"`
	CompletedAt   flexString      `json:"completed_at"`
}

type rawItem struct {
	Name      flexString `json:"name"`
	Size      flexString `json:"size"`
	SizeLabel flexString `json:"sizeLabel"`
	Quantity  flexNumber `json:"quantity"`
	Price     flexNumber `json:"price"`
}

// flexNumber accepts a JSON number or a string holding one. Any other value
// decodes to zero instead of failing the enclosing object.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		b = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		f = 0
	}
	*n = flexNumber(f)
	return nil
}

// flexString accepts a JSON string or a scalar, keeping the scalar's text.
// Objects and arrays decode to the empty string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, string(b) == "null", b[0] == '{', b[0] == '[':
		*s = ""
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			v = ""
		}
		*s = flexString(v)
	default:
		*s = flexString(b)
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// OrderList is a decoded admin listing. Skipped holds one reason per entry
// that could not become an order.
type OrderList struct {
	Orders  []models.Order
	Skipped []string
}

// DecodeOrders turns the "orders" value of the admin endpoint into orders.
// Loose data is normalized rather than rejected: a non-array value yields no
// orders, numbers may arrive as strings, times as RFC 3339, SQL datetimes or
// Unix epochs, items that are not an array (or a JSON string holding one)
// become empty, and missing customer, payment, estimate or creation time get
// defaults. Entries that are not objects or have no usable id are skipped and
// listed in Skipped. Only a value that is not JSON at all is reported as
// malformed.
func DecodeOrders(raw []byte, now time.Time) (OrderList, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		if len(raw) > 0 && !json.Valid(raw) {
			return OrderList{}, fmt.Errorf("decode orders: %w", errs.ErrMalformed)
		}
		return OrderList{Orders: []models.Order{}}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return OrderList{}, fmt.Errorf("decode orders: %w: %v", errs.ErrMalformed, err)
	}

	list := OrderList{Orders: make([]models.Order, 0, len(entries))}
	for i, e := range entries {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			list.Skipped = append(list.Skipped, fmt.Sprintf("entry %d: not an object", i))
			continue
		}
		var ro rawOrder
		if err := json.Unmarshal(e, &ro); err != nil {
			list.Skipped = append(list.Skipped, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if ro.ID <= 0 || float64(ro.ID) != math.Trunc(float64(ro.ID)) {
			list.Skipped = append(list.Skipped, fmt.Sprintf("entry %d: missing or invalid id", i))
			continue
		}
		list.Orders = append(list.Orders, normalize(ro, now))
	}
	return list, nil
}

func normalize(ro rawOrder, now time.Time) models.Order {
	o := models.Order{
		ID:            int64(ro.ID),
		Items:         decodeItems(ro.Items),
		Total:         float64(ro.Total),
		Customer:      firstNonEmpty(string(ro.Customer), string(ro.CustomerName), models.DefaultCustomer),
		PaymentMethod: firstNonEmpty(string(ro.Payment), string(ro.PaymentMethod), string(models.DefaultPayment)),
		Status:        models.OrderStatus(strings.ToLower(strings.TrimSpace(string(ro.Status)))),
		EstimatedTime: int(ro.EstimatedTime),
		Synced:        true,
	}
	if o.EstimatedTime <= 0 {
		o.EstimatedTime = models.DefaultEstimatedMinutes
	}
	if o.Status == "" {
		o.Status = models.StatusReceived
	}
	if t, ok := parseTime(string(ro.CreatedAt)); ok {
		o.CreatedAt = t
	} else {
		o.CreatedAt = now
	}
	if t, ok := parseTime(string(ro.CompletedAt)); ok {
		o.CompletedAt = &t
	}
	return o
}

func decodeItems(raw json.RawMessage) []models.OrderItem {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return []models.OrderItem{}
		}
		raw = bytes.TrimSpace([]byte(s))
	}
	if len(raw) == 0 || raw[0] != '[' {
		return []models.OrderItem{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []models.OrderItem{}
	}
	items := make([]models.OrderItem, 0, len(elems))
	for _, e := range elems {
		var ri rawItem
		if err := json.Unmarshal(e, &ri); err != nil {
			continue
		}
		it := models.OrderItem{
			Name:     firstNonEmpty(string(ri.Name), "Item"),
			Size:     firstNonEmpty(string(ri.Size), string(ri.SizeLabel)),
			Quantity: int(ri.Quantity),
			Price:    float64(ri.Price),
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		items = append(items, it)
	}
	return items
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	epoch, err := strconv.ParseInt(s, 10, 64)
	if err != nil || epoch <= 0 {
		return time.Time{}, false
	}
	// Values past year 33658 in seconds are taken as milliseconds.
	if epoch >= 1e12 {
		return time.UnixMilli(epoch).UTC(), true
	}
	return time.Unix(epoch, 0).UTC(), true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
