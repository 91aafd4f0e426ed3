package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pizza-deprizza/client"
	"pizza-deprizza/errs"
	"pizza-deprizza/kitchen"
	"pizza-deprizza/models"
)

const kitchenHelp = `comandos: s <id> seleccionar | 1 preparando | 2 en horno | 3 lista | esc deseleccionar
          f <estado|all> filtrar | o <time|estimated|priority> ordenar | r actualizar | q salir`

func newKitchenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kitchen",
		Short: "Run the kitchen dashboard against the order API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runKitchen(ctx)
		},
	}
}

func (a *app) runKitchen(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	api := client.New(a.cfg.APIBaseURL, a.cfg.HTTPTimeout)
	board := kitchen.NewDashboard(api, a.log)
	board.SetRenderCallback(func(v kitchen.View) { printView(a.out, v) })
	board.SetNotifyCallback(func(n models.Notification) { fmt.Fprintf(a.out, "[%s] %s\n", n.Level, n.Message) })

	fmt.Fprintln(a.out, kitchenHelp)
	go a.readKitchenCommands(ctx, cancel, board)

	return board.Run(ctx, kitchen.Intervals{
		Refresh: a.cfg.RefreshInterval,
		Guard:   a.cfg.RefreshGuard,
		Derived: a.cfg.DerivedInterval,
		Stats:   a.cfg.StatsInterval,
	})
}

func (a *app) readKitchenCommands(ctx context.Context, quit context.CancelFunc, board *kitchen.Dashboard) {
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		if done := runKitchenCommand(ctx, board, sc.Text(), a.out); done {
			quit()
			return
		}
	}
}

// runKitchenCommand executes one input line and reports whether to quit.
func runKitchenCommand(ctx context.Context, board *kitchen.Dashboard, line string, out io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var err error
	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		return true
	case "s", "select":
		id, perr := strconv.ParseInt(arg, 10, 64)
		if perr != nil {
			err = errs.Invalid("id", "id de orden inválido %q", arg)
			break
		}
		err = board.SelectOrder(id)
	case "1", "2", "3":
		err = board.HandleKey(ctx, fields[0])
	case "esc", "escape":
		err = board.HandleKey(ctx, "Escape")
	case "f", "filter":
		board.SetFilter(arg)
	case "o", "sort":
		board.SetSort(kitchen.SortKey(arg))
	case "r", "refresh":
		err = board.Refresh(ctx)
	default:
		fmt.Fprintln(out, kitchenHelp)
	}
	if err != nil {
		fmt.Fprintln(out, "error:", errs.Message(err))
	}
	return false
}

func printView(out io.Writer, v kitchen.View) {
	st := v.Stats
	header := fmt.Sprintf("── Cocina ── total %d | pendientes %d | en proceso %d | listas %d | promedio %.0f min",
		st.Total, st.Pending, st.Cooking, st.Ready, st.AverageMinutes)
	if v.Offline {
		header += " | sin conexión"
	}
	fmt.Fprintln(out, header)

	if len(v.Orders) == 0 {
		fmt.Fprintln(out, "No hay órdenes")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, o := range v.Orders {
		mark := " "
		if v.Selected != nil && v.Selected.ID == o.ID {
			mark = ">"
		}
		unsynced := ""
		if !o.Synced {
			unsynced = "*"
		}
		fmt.Fprintf(tw, "%s #%d%s\t%s\t%d%%\t%s\t%s\t%s\n",
			mark, o.ID, unsynced, kitchen.StatusText(o.Status), o.Progress,
			kitchen.PriorityText(o.Priority), o.Customer, describeItems(o.Items))
	}
	_ = tw.Flush()
}

func describeItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s (%s)", it.Quantity, it.Name, it.Size))
	}
	return strings.Join(parts, ", ")
}
