package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"bakerypos/internal/domain"
)

// ReceiptText renders a sale as the plain-text receipt handed out for
// copying or printing.
func ReceiptText(sale domain.Sale, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt #%d\n", sale.ID)
	fmt.Fprintf(&b, "Date: %s\n", displayTime(sale.Date))
	fmt.Fprintf(&b, "Payment Method: %s\n", strings.ToUpper(string(sale.Payment)))
	fmt.Fprintf(&b, "Shift ID: %d\n\nItems:\n", sale.ShiftID)
	for _, it := range sale.Items {
		fmt.Fprintf(&b, "%s - %d x %s %s = %s %s\n",
			it.Name, it.Quantity, amount(it.Price), currency,
			amount(it.Price*float64(it.Quantity)), currency)
	}
	fmt.Fprintf(&b, "\nGrand Total: %s %s\n", amount(sale.Total), currency)
	return b.String()
}

// ShiftSummaryText renders a closed shift as the share message sent to the
// owner after the register closes.
func ShiftSummaryText(sum domain.ShiftSummary, currency string) string {
	end := ""
	if sum.Shift.EndTime != nil {
		end = *sum.Shift.EndTime
	}

	var b strings.Builder
	b.WriteString("*Bakery Shift Summary*\n\n")
	fmt.Fprintf(&b, "*Shift ID:* %d\n", sum.Shift.ID)
	fmt.Fprintf(&b, "*Start Time:* %s\n", displayTime(sum.Shift.StartTime))
	fmt.Fprintf(&b, "*End Time:* %s\n\n", displayTime(end))
	fmt.Fprintf(&b, "*Total Sales:* %s %s\n", amount(sum.Shift.Total), currency)
	fmt.Fprintf(&b, "- Cash: %s %s\n", amount(sum.Shift.CashTotal), currency)
	fmt.Fprintf(&b, "- MoMo: %s %s\n", amount(sum.Shift.MomoTotal), currency)
	fmt.Fprintf(&b, "*Transactions:* %d\n\n", sum.Transactions)
	b.WriteString("*Item Breakdown:*\n")
	for _, it := range sum.Items {
		fmt.Fprintf(&b, "- %s: %d x %s %s = %s %s\n",
			it.Name, it.Quantity, amount(it.Price), currency, amount(it.Total), currency)
	}
	return b.String()
}

func displayTime(ts string) string {
	if ts == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// amount prints whole values without a fraction; prices are whole currency
// units in practice.
func amount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
