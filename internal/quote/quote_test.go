package quote_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tlecomte/finance-tracker-backend/internal/quote"
)

func chartBody(closes string) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [1740787200, 1740873600, 1740960000],
				"indicators": {"quote": [{"close": %s}]}
			}],
			"error": null
		}
	}`, closes)
}

// TestFinanceClient_LatestClose tests the chart API response handling.
//
// WHY: The provider pads the close series with zeros on non-trading days and
// signals errors inside a 200 response; both must be handled, not passed on
// as prices.
func TestFinanceClient_LatestClose(t *testing.T) {
	t.Run("returns the most recent close", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody("[100.5, 101.2, 102.8]"))
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		price, err := client.LatestClose("VWCE", "")

		// Assert
		if err != nil {
			t.Fatalf("LatestClose() returned unexpected error: %v", err)
		}
		if price != 102.8 {
			t.Errorf("Expected 102.8, got %v", price)
		}
	})

	t.Run("skips trailing zero closes from non-trading days", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody("[100.5, 101.2, 0]"))
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		price, err := client.LatestClose("VWCE", "")

		// Assert
		if err != nil {
			t.Fatalf("LatestClose() returned unexpected error: %v", err)
		}
		if price != 101.2 {
			t.Errorf("Expected 101.2, got %v", price)
		}
	})

	t.Run("requests the expected chart path", func(t *testing.T) {
		// Setup
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, chartBody("[100]"))
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		if _, err := client.LatestClose("VWCE", ""); err != nil {
			t.Fatalf("LatestClose() returned unexpected error: %v", err)
		}

		// Assert
		if gotPath != "/v8/finance/chart/VWCE" {
			t.Errorf("Expected chart path for VWCE, got %q", gotPath)
		}
	})

	t.Run("sends the bearer token when one is given", func(t *testing.T) {
		// Setup
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, chartBody("[100]"))
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		if _, err := client.LatestClose("VWCE", "secret-token"); err != nil {
			t.Fatalf("LatestClose() returned unexpected error: %v", err)
		}

		// Assert
		if gotAuth != "Bearer secret-token" {
			t.Errorf("Expected bearer token header, got %q", gotAuth)
		}
	})

	t.Run("surfaces a provider error embedded in a 200 response", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": "No data found, symbol may be delisted"}}`)
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		_, err := client.LatestClose("GONE", "")

		// Assert
		if err == nil {
			t.Error("Expected an error for a provider-side failure")
		}
	})

	t.Run("fails on a non-200 status", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		_, err := client.LatestClose("VWCE", "")

		// Assert
		if err == nil {
			t.Error("Expected an error for a 429 response")
		}
	})

	t.Run("fails when every close is zero", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody("[0, 0, 0]"))
		}))
		defer server.Close()

		client := quote.NewFinanceClient().WithBaseURL(server.URL)

		// Execute
		_, err := client.LatestClose("VWCE", "")

		// Assert
		if err == nil {
			t.Error("Expected an error when no usable close exists")
		}
	})
}
