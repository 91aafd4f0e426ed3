package storefront

import (
	"pizza-deprizza/builder"
	"pizza-deprizza/models"
)

// Renderer receives every state change the storefront shows. Calls happen on
// the goroutine that caused the change, never while internal locks are held.
type Renderer interface {
	Menu(items []models.MenuItem)
	Cart(lines []models.CartLine, total int64)
	// SizeDialog is called with nil when the picker closes.
	SizeDialog(d *SizeDialog)
	Builder(b builder.Build, price int64)
	Banner(b Banner)
	Notify(n models.Notification)
}

// NopRenderer ignores everything. Embed it to implement part of Renderer.
type NopRenderer struct{}

func (NopRenderer) Menu([]models.MenuItem) {}
func (NopRenderer) Cart([]models.CartLine, int64) {}
func (NopRenderer) SizeDialog(*SizeDialog) {}
func (NopRenderer) Builder(builder.Build, int64) {}
func (NopRenderer) Banner(Banner) {}
func (NopRenderer) Notify(models.Notification) {}
