// Package ticket renders the plain-text purchase ticket.
package ticket

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pizza-deprizza/cart"
	"pizza-deprizza/models"
	"pizza-deprizza/pricing"
)

// FileName is the name the ticket is saved under.
const FileName = "ticket.txt"

// DateLayout renders the purchase date.
const DateLayout = "2/1/2006, 15:04:05"

// Generate renders the ticket for lines. The TOTAL line is the cart total.
func Generate(lines []models.CartLine, customer string, method models.PaymentMethod, at time.Time) string {
	var sb strings.Builder
	sb.WriteString("🍕 Pizza Deprizza - Ticket\n\n")
	fmt.Fprintf(&sb, "Fecha: %s\n", at.Format(DateLayout))
	fmt.Fprintf(&sb, "Cliente: %s\n", customer)
	fmt.Fprintf(&sb, "Método de pago: %s\n\n", method)
	sb.WriteString("--- Pedido ---\n")
	for _, l := range lines {
		fmt.Fprintf(&sb, "%s - %s x%d  $%s\n", l.Name, l.SizeLabel, l.Quantity, pricing.Money(l.LineTotal()))
	}
	fmt.Fprintf(&sb, "\nTOTAL: $%s\n\n", pricing.Money(cart.Total(lines)))
	sb.WriteString("¡Gracias por tu compra!")
	return sb.String()
}

// Write saves the ticket as dir/ticket.txt and returns the path.
func Write(dir, text string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create ticket dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write ticket: %w", err)
	}
	return path, nil
}
