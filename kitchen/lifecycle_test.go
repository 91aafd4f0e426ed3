package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pizza-deprizza/models"
)

var now = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func order(id int64, status models.OrderStatus, age time.Duration, est int) models.Order {
	return models.Order{ID: id, Status: status, CreatedAt: now.Add(-age), EstimatedTime: est, Synced: true}
}

func TestProgress(t *testing.T) {
	want := map[models.OrderStatus]int{
		models.StatusReceived:  10,
		models.StatusPreparing: 35,
		models.StatusCooking:   70,
		models.StatusReady:     100,
		models.StatusCompleted: 100,
		models.StatusDelivered: 100,
		"burnt":                0,
		"":                     0,
	}
	for status, p := range want {
		assert.Equal(t, p, Progress(status), status)
	}
}

func TestPriorityOf(t *testing.T) {
	tests := []struct {
		age  time.Duration
		est  int
		want models.Priority
	}{
		{30 * time.Minute, 25, models.PriorityHigh},
		{20 * time.Minute, 25, models.PriorityMedium},
		{10 * time.Minute, 25, models.PriorityLow},
		{25 * time.Minute, 25, models.PriorityMedium},
		{30 * time.Minute, 0, models.PriorityHigh},
		{0, 25, models.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityOf(order(1, models.StatusReceived, tt.age, tt.est), now), "%v/%d", tt.age, tt.est)
	}
}

func TestActiveExcludesOnlyFinishedOrders(t *testing.T) {
	var all []models.Order
	for i, s := range models.AllStatuses {
		all = append(all, order(int64(i+1), s, 0, 25))
	}
	got := Active(all)
	var statuses []models.OrderStatus
	for _, o := range got {
		statuses = append(statuses, o.Status)
	}
	assert.Equal(t, []models.OrderStatus{
		models.StatusReceived, models.StatusPreparing, models.StatusCooking, models.StatusReady,
	}, statuses)
}

func TestFilterByStatus(t *testing.T) {
	orders := []models.Order{
		order(1, models.StatusReceived, 0, 25),
		order(2, models.StatusCooking, 0, 25),
		order(3, models.StatusReceived, 0, 25),
	}
	assert.Len(t, FilterByStatus(orders, FilterAll), 3)
	assert.Len(t, FilterByStatus(orders, ""), 3)
	got := FilterByStatus(orders, "received")
	assert.Equal(t, []int64{1, 3}, ids(got))
	assert.Empty(t, FilterByStatus(orders, "ready"))
}

func TestSort(t *testing.T) {
	a := order(1, models.StatusReceived, 5*time.Minute, 30)
	a.Priority = models.PriorityLow
	b := order(2, models.StatusReceived, 15*time.Minute, 20)
	b.Priority = models.PriorityHigh
	c := order(3, models.StatusReceived, 10*time.Minute, 20)
	c.Priority = models.PriorityLow
	orders := []models.Order{a, b, c}

	assert.Equal(t, []int64{2, 3, 1}, ids(Sort(orders, SortByTime)))
	assert.Equal(t, []int64{2, 3, 1}, ids(Sort(orders, SortByEstimated)))
	assert.Equal(t, []int64{2, 1, 3}, ids(Sort(orders, SortByPriority)))
	assert.Equal(t, []int64{1, 2, 3}, ids(orders), "input must not be reordered")
}

func TestStats(t *testing.T) {
	orders := []models.Order{
		order(1, models.StatusReceived, 50*time.Minute, 25),
		order(2, models.StatusPreparing, 10*time.Minute, 25),
		order(3, models.StatusCooking, 20*time.Minute, 25),
		order(4, models.StatusReady, 30*time.Minute, 25),
	}
	st := Stats(orders, now)
	assert.Equal(t, Statistics{Total: 4, Pending: 1, Cooking: 2, Ready: 1, AverageMinutes: 20}, st)
	assert.Equal(t, Statistics{}, Stats(nil, now))
	assert.Zero(t, Stats(orders[:1], now).AverageMinutes)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "En Horno", StatusText(models.StatusCooking))
	assert.Equal(t, "weird", StatusText("weird"))
	assert.Equal(t, "Alta", PriorityText(models.PriorityHigh))
	assert.Equal(t, "Baja", PriorityText(models.PriorityLow))
}

func TestSampleOrdersAreDerived(t *testing.T) {
	orders := SampleOrders(now)
	assert.Len(t, orders, 2)
	assert.Equal(t, 10, orders[0].Progress)
	assert.Equal(t, models.PriorityLow, orders[0].Priority)
	assert.Equal(t, 35, orders[1].Progress)
}

func ids(orders []models.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
