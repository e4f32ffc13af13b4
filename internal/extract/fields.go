package extract

// Selectors for the CryptoPanic news page. The extraction surface is a
// closed set: every field the assembler reads is enumerated here with
// its locator, extraction mode, and default.
const (
	// SelItem matches one news row on the page.
	SelItem = "div.news-row.news-row-link"

	// SelLoadMore is the explicit pagination control, when the page
	// offers one.
	SelLoadMore = ".btn-outline-primary"

	// SelSearchInput and SelSearchHit drive the topic search box.
	SelSearchInput = "#acSearchInput"
	SelSearchHit   = ".ac__entry.ac__selected"

	selCurrency    = "a.colored-link"
	selVote        = "span.nc-vote-cont"
	selIconTwitter = "span.open-link-icon.icon.icon-twitter"
	selIconYouTube = "span.open-link-icon.icon.icon-youtube-play"
)

// Field locates one extractable value within an item scope. Attr empty
// means text content.
type Field struct {
	Selector string
	Attr     string
	Default  string
}

var (
	fieldTitle      = Field{Selector: "span.title-text span"}
	fieldCapturedAt = Field{Selector: "time", Attr: "datetime"}
	fieldSource     = Field{Selector: "span.si-source-domain"}
	fieldSourceURL  = Field{Selector: "a.news-cell.nc-title", Attr: "href"}
)
