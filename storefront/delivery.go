package storefront

import (
	"context"
	"fmt"
	"time"
)

// Banner is the delivery estimate shown on the storefront.
type Banner struct {
	Status  string
	Time    string
	Offline bool
}

// OfflineBanner is shown while the backend cannot be reached.
var OfflineBanner = Banner{Status: "Modo offline", Time: "25-35 min", Offline: true}

// DeliveryBanner fetches the restaurant load and updates the banner.
func (s *Storefront) DeliveryBanner(ctx context.Context) Banner {
	b := OfflineBanner
	st, err := s.api.DeliveryStatus(ctx)
	if err != nil {
		s.log.Debug("delivery status unavailable", "error", err)
	} else {
		b = Banner{
			Status: st.Status,
			Time:   fmt.Sprintf("Tiempo estimado: %d-%d min", st.AverageWaitTime, st.AverageWaitTime+10),
		}
	}

	s.mu.Lock()
	s.banner = b
	s.mu.Unlock()
	s.render.Banner(b)
	return b
}

// CurrentBanner returns the last banner shown.
func (s *Storefront) CurrentBanner() Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

// RunDeliveryBanner updates the banner now and every interval until ctx is done.
func (s *Storefront) RunDeliveryBanner(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("storefront: delivery poll interval must be positive, got %s", interval)
	}
	s.DeliveryBanner(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.DeliveryBanner(ctx)
		}
	}
}
