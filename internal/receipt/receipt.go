package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"oilshop/pos/domain"
)

const (
	width       = 42
	nameColumn  = 20
	qtyColumn   = 6
	priceColumn = 8
)

// Renderer formats a cart into the fixed-width text handed to the printer.
type Renderer struct {
	ShopName string
	Currency string
	Footer   string
}

// NewRenderer constructs a Renderer with the default footer.
func NewRenderer(shopName, currency string) Renderer {
	return Renderer{ShopName: shopName, Currency: currency, Footer: "Thank you for shopping with us!"}
}

// Render lays out lines and total. The output depends only on its arguments.
func (r Renderer) Render(lines []domain.CartLine, total decimal.Decimal, now time.Time) string {
	rule := strings.Repeat("=", width)
	thin := strings.Repeat("-", width)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(center(r.ShopName) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02 15:04"))
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-*s %-*s %*s\n", nameColumn, "Item", qtyColumn, "Qty", priceColumn, "Price")
	b.WriteString(thin + "\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "%-*s %-*d %*s\n", nameColumn, truncate(line.Name, nameColumn), qtyColumn, line.Quantity, priceColumn, line.Price.StringFixed(2))
	}
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-*s %s %s\n", nameColumn+qtyColumn+1, "TOTAL:", r.Currency, total.StringFixed(2))
	b.WriteString(rule + "\n")
	if r.Footer != "" {
		b.WriteString(center(r.Footer) + "\n")
		b.WriteString(rule + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func center(s string) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// DefaultPath is where receipts land when no path is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "receipt.txt")
}

// WriteFile stores the receipt text, replacing the previous receipt.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}
