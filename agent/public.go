package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hmelse/folio"
	"github.com/hmelse/folio/docs"
	"github.com/hmelse/folio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// The facilitator is never declared as a tool, so nobody reads its description.
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to get information about the positions recorded in his trade
			journal, their current value, and the market behind them.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume that you know about his tickers, check the journal first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns the market expert, grounded on Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of all the financial products and institutions,
		and of the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper returns the journal expert, with tools to read the user's
// trade journal and value its positions.
func NewBookkeeper() *Expert {

	lib := []Function{Holdings, Trades}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's trade journal.
		He can list the recorded trades and value the resulting positions on any day.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's trade journal.
				You know how to use the Tools to extract relevant information about the user's positions and wealth.
				You are part of a team of experts, yours is everything recorded in the journal. They might ask
				you questions about the user's portfolio, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's portfolio
				  - the trades recorded in the journal
				  - the positions held on a day and their market value
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Holdings is the bookkeeper tool that values the portfolio on a day.
var Holdings = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Holdings",
		Description: `Holdings reports every position held in the portfolio on the given day:
		the ticker, the number of shares, the quoted price and the market value, along with
		the total portfolio value. The cash position appears as a regular line.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {
					Type: genai.TypeString,
					Description: `The date on which to value the holdings. Today is the default.
					Otherwise it uses a flexible date format based on YYYY-MM-DD:

					` + must(docs.GetTopic("dates")),
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of the positions with their shares, price and market value.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		fresp := &genai.FunctionResponse{ID: id, Name: "Holdings", Response: map[string]any{}}

		date, err := parseDate(args)
		if err != nil {
			fresp.Response["error"] = err.Error()
			return fresp
		}

		out, err := holdings(date)
		if err != nil {
			fresp.Response["error"] = err.Error()
			return fresp
		}

		fresp.Response["output"] = out
		return fresp
	},
}

// Trades is the bookkeeper tool that lists the journal's trades.
var Trades = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Trades",
		Description: `Trades lists the trades recorded in the journal in chronological order:
		buys, sells, deposits and withdrawals, each with its date and memo.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"ticker": {
					Type:        genai.TypeString,
					Description: "Restrict the list to the buys and sells of this ticker. Every trade by default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of the trades with their date, description and memo.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		fresp := &genai.FunctionResponse{ID: id, Name: "Trades", Response: map[string]any{}}

		ticker := ""
		if arg, ok := args["ticker"]; ok {
			s, ok := arg.(string)
			if !ok {
				fresp.Response["error"] = fmt.Sprintf("argument 'ticker' is not a string as expected but %T", arg)
				return fresp
			}
			ticker = s
		}

		out, err := trades(ticker)
		if err != nil {
			fresp.Response["error"] = err.Error()
			return fresp
		}

		fresp.Response["output"] = out
		return fresp
	},
}

// holdings renders the holdings report the Holdings tool returns.
func holdings(on folio.Date) (string, error) {
	journal, err := loadJournal()
	if err != nil {
		return "", err
	}
	pricer, err := loadPricer()
	if err != nil {
		return "", err
	}
	report, err := folio.NewHoldingsReport(journal, cashTicker(), pricer, on)
	if err != nil {
		return "", err
	}
	return renderer.HoldingsMarkdown(report), nil
}

// trades renders the trade list the Trades tool returns.
func trades(ticker string) (string, error) {
	journal, err := loadJournal()
	if err != nil {
		return "", err
	}
	var filters []func(folio.Trade) bool
	if ticker != "" {
		filters = append(filters, folio.ByTicker(ticker))
	}
	return renderer.TradesMarkdown(journal.Trades(filters...)), nil
}

// The tools resolve their files from the same environment variables as the
// CLI commands. The command line flags do not reach this package.

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func cashTicker() string { return getEnv("FOLIO_CASH", "CASH") }

// loadJournal decodes the journal named by $FOLIO_JOURNAL. A missing file is
// an empty journal.
func loadJournal() (*folio.Journal, error) {
	filename := getEnv("FOLIO_JOURNAL", "journal.jsonl")
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return folio.NewJournal(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", filename, err)
	}
	defer f.Close()

	journal, err := folio.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", filename, err)
	}
	return journal, nil
}

// loadPricer builds the same pricer as the CLI reports: quotes from
// $FOLIO_PRICES with the cash ticker defaulting to one unit of $FOLIO_CURRENCY.
func loadPricer() (folio.Pricer, error) {
	filename := getEnv("FOLIO_PRICES", "prices.jsonl")
	table := folio.NewPriceTable()

	f, err := os.Open(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open prices file %q: %w", filename, err)
	}
	if err == nil {
		defer f.Close()
		table, err = folio.DecodePrices(f)
		if err != nil {
			return nil, fmt.Errorf("could not decode prices file %q: %w", filename, err)
		}
	}

	return folio.CashAware(table.Pricer(), cashTicker(), getEnv("FOLIO_CURRENCY", "USD")), nil
}

func parseDate(args map[string]any) (folio.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return folio.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return folio.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := folio.ParseDate(sdate)
	if err != nil {
		return folio.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s", sdate, must(docs.GetTopic("dates")))
	}

	return date, nil
}
