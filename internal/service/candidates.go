package service

import "github.com/ndewijer/Stock-Valuation-Backend/internal/vci"

// Candidate field names per logical attribute, in priority order.
var (
	listingNameFields   = []string{"organ_short_name", "organ_name", "short_name", "company_name"}
	overviewNameFields  = []string{"organ_name", "short_name", "company_name", "shortName"}
	exchangeFields      = []string{"exchange", "comGroupCode", "type"}
	listingShareFields  = []string{"listed_share", "issue_share", "outstanding_share", "sharesOutstanding", "totalShares"}
	overviewShareFields = []string{"issue_share", "listed_share", "outstanding_share", "sharesOutstanding", "totalShares"}
	ratioShareFields    = []string{"issue_share"}
	sectorFields        = []string{"icb_name2", "icb_name3", "icb_name4", "industry", "industryName"}

	epsFields       = []string{"eps", "earningsPerShare", "earnings_per_share"}
	bookValueFields = []string{"book_value", "bookValue", "book_value_per_share"}
)

// Financial statement fields. Each list carries the Vietnamese label first,
// then the English label, then camel-case API variants.
var (
	netIncomeFields        = []string{"Lợi nhuận sau thuế", "Net income", "net_income", "netIncome", "profit"}
	revenueFields          = []string{"Doanh thu thuần", "Revenue", "revenue", "netRevenue", "totalRevenue"}
	totalAssetsFields      = []string{"TỔNG CỘNG TÀI SẢN", "Total assets", "totalAsset", "totalAssets"}
	totalLiabilitiesFields = []string{"TỔNG CỘNG NỢ PHẢI TRẢ", "Total liabilities", "totalLiabilities", "totalDebt"}
	cashFields             = []string{"Tiền và tương đương tiền", "Cash", "cash", "cashAndEquivalents"}
	ebitFields             = []string{"Lợi nhuận từ hoạt động kinh doanh", "Operating income", "EBIT", "Operating profit", "operationProfit"}
	ebitdaFields           = []string{"EBITDA", "ebitda"}
	depreciationFields     = []string{"Khấu hao tài sản cố định", "Depreciation", "depreciation"}
	operatingCashFields    = []string{"Lưu chuyển tiền thuần từ hoạt động kinh doanh", "Operating cash flow", "Cash from operations"}
	capexFields            = []string{"Chi để mua sắm tài sản cố định", "Capital expenditure", "Capex", "capex"}
)

// Price board fields in priority order.
var priceFields = []vci.BoardKey{
	{Category: "match", Field: "match_price"},
	{Category: "listing", Field: "ref_price"},
	{Category: "bid_ask", Field: "bid_1_price"},
	{Category: "match", Field: "close_price"},
	{Category: "match", Field: "last_price"},
}
