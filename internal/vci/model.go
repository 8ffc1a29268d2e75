package vci

// Record is one row returned by the provider, keyed by field name.
// Values are whatever the JSON carried: float64, string, bool or nil.
type Record map[string]any

// Language selects the language of financial statement field names.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
)

// Statements holds the three financial statements for one period selector.
// Each slice is ordered most recent first; only the first row is normally used.
type Statements struct {
	Income   []Record
	Balance  []Record
	CashFlow []Record
}

// Empty reports whether neither the income statement nor the balance sheet has rows.
func (s Statements) Empty() bool {
	return len(s.Income) == 0 && len(s.Balance) == 0
}

// BoardKey addresses one value of the trading board, e.g. {"match", "match_price"}.
type BoardKey struct {
	Category string
	Field    string
}

// Board is the trading snapshot for a single symbol, flattened to (category, field) keys.
type Board map[BoardKey]any

// Statement path segments on the provider gateway.
const (
	statementIncome   = "income-statement"
	statementBalance  = "balance-sheet"
	statementCashFlow = "cash-flow"
)
