package view

import (
	"context"
	"fmt"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatPesos renders whole COP with thousands dots, the way the shop
// writes prices: 131378 -> "$131.378".
func FormatPesos(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}

	if neg {
		return "-$" + s
	}

	return "$" + s
}

// FormatQty renders a stock quantity in m² or linear meters.
func FormatQty(q float64) string {
	return fmt.Sprintf("%.2f", q)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
