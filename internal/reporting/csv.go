package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders per-pair metrics as CSV string.
func RenderCSV(rows []PairRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("pair_id,tier,total_trades,win_rate,profit_factor,")
	sb.WriteString("annual_return_pct,total_pips,max_consecutive_losses,ema_config\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%.2f,%.4f,%.2f,%.1f,%d,%s\n",
			r.PairID,
			r.Tier,
			r.TotalTrades,
			r.WinRate,
			r.ProfitFactor,
			r.AnnualReturnPct,
			r.TotalPips,
			r.MaxConsecutiveLosses,
			r.EMAConfig,
		))
	}

	return sb.String()
}
