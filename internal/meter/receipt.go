package meter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Receipt renders a plain-text receipt for a completed sale, one line per
// batch plus a grand total.
func Receipt(sale *SaleResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Reference: %s\n", sale.Transaction.ReferenceNumber))
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", sale.Transaction.CreatedAt.Format("2006-01-02 15:04")))

	total := decimal.Zero

	for _, b := range sale.Batches {
		sb.WriteString(fmt.Sprintf("* %s x%d @ %s = %s\n",
			b.MeterType, b.BatchAmount, b.UnitPrice.StringFixed(2), b.TotalPrice.StringFixed(2)))
		total = total.Add(b.TotalPrice)
	}

	sb.WriteString(fmt.Sprintf("\nTotal: KES %s\n", total.StringFixed(2)))

	if len(sale.Batches) > 0 {
		b := sale.Batches[0]
		sb.WriteString(fmt.Sprintf("Sold to: %s (%s, %s)\n", b.Recipient, b.CustomerType, b.CustomerCounty))
		sb.WriteString(fmt.Sprintf("Served by: %s\n", b.UserName))
	}

	return sb.String()
}
