package domain

// LowStockThreshold is the fixed quantity below which a product is flagged
// on the POS grid and in stock alerts.
const LowStockThreshold = 5

type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayMomo PaymentMethod = "momo" // mobile money
)

func (m PaymentMethod) Valid() bool { return m == PayCash || m == PayMomo }

type Product struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Image     string  `db:"image" json:"image,omitempty"`
	CreatedAt string  `db:"created_at" json:"-"`
	UpdatedAt string  `db:"updated_at" json:"-"`
}

func (p Product) LowStock() bool { return p.Quantity < LowStockThreshold }

// CartLine is one staged line of the in-progress transaction. Price is a
// snapshot taken when the line was added; later catalog edits do not move it.
type CartLine struct {
	ProductID  int64   `db:"product_id" json:"productId"`
	Name       string  `db:"name" json:"name"`
	PriceAtAdd float64 `db:"price_at_add" json:"price"`
	Quantity   int     `db:"qty" json:"quantity"`
	Subtotal   float64 `db:"subtotal" json:"subtotal"`
}

type SaleItem struct {
	ProductID int64   `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"qty" json:"quantity"`
}

// Sale is immutable once committed; items carry name/price snapshots so
// receipts survive catalog edits and deletions.
type Sale struct {
	ID      int64         `db:"id" json:"id"`
	Date    string        `db:"created_at" json:"date"`
	Total   float64       `db:"total" json:"total"`
	Payment PaymentMethod `db:"payment" json:"paymentMethod"`
	ShiftID int64         `db:"shift_id" json:"shiftId"`
	Items   []SaleItem    `json:"items"`
}

// Shift is active while EndTime is nil; at most one row may be active.
type Shift struct {
	ID        int64   `db:"id" json:"id"`
	StartTime string  `db:"start_time" json:"startTime"`
	EndTime   *string `db:"end_time" json:"endTime"`
	CashTotal float64 `db:"cash_total" json:"cashTotal"`
	MomoTotal float64 `db:"momo_total" json:"momoTotal"`
	Total     float64 `db:"total" json:"total"`
}

func (s Shift) Active() bool { return s.EndTime == nil }

// ItemBreakdown aggregates sold quantity and revenue per product name.
type ItemBreakdown struct {
	Name     string  `db:"name" json:"name"`
	Quantity int     `db:"quantity" json:"quantity"`
	Price    float64 `db:"price" json:"price"`
	Total    float64 `db:"total" json:"total"`
}

type ShiftSummary struct {
	Shift        Shift           `json:"shift"`
	SaleIDs      []int64         `json:"sales"`
	Transactions int             `json:"transactions"`
	Items        []ItemBreakdown `json:"items"`
}

type SalesSummary struct {
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	Transactions int             `json:"transactions"`
	CashTotal    float64         `json:"cashTotal"`
	MomoTotal    float64         `json:"momoTotal"`
	GrandTotal   float64         `json:"grandTotal"`
	Items        []ItemBreakdown `json:"items"`
}
