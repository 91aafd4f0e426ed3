package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pizza-deprizza/client"
	"pizza-deprizza/storefront"
)

func newDeliveryStatusCommand(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "delivery-status",
		Short: "Print the storefront delivery estimate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.deliveryStatus(ctx, watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling at DELIVERY_POLL_INTERVAL")
	return cmd
}

type bannerPrinter struct {
	storefront.NopRenderer
	a *app
}

func (p bannerPrinter) Banner(b storefront.Banner) {
	fmt.Fprintf(p.a.out, "%s · %s\n", b.Status, b.Time)
}

func (a *app) deliveryStatus(ctx context.Context, watch bool) error {
	api := client.New(a.cfg.APIBaseURL, a.cfg.HTTPTimeout)
	shop := storefront.New(api, bannerPrinter{a: a}, a.log, a.cfg.TicketDir)
	if !watch {
		shop.DeliveryBanner(ctx)
		return nil
	}
	return shop.RunDeliveryBanner(ctx, a.cfg.DeliveryInterval)
}
