package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "HeatControlAPI/1.0" {
			t.Errorf("Expected identifying User-Agent, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "Berlin" {
			t.Errorf("Expected query Berlin, got %s", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("Expected format json, got %s", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("Expected limit 10, got %s", got)
		}

		w.Write([]byte(`[
			{"display_name":"Berlin, Germany","lat":"52.5170365","lon":"13.3888599"},
			{"display_name":"Berlin, CT, USA","lat":"41.6215","lon":"-72.7457"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "HeatControlAPI/1.0")
	results, err := client.Search(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results.Results))
	}
	if results.Results[0].DisplayName != "Berlin, Germany" {
		t.Errorf("Expected first match Berlin, Germany, got %s", results.Results[0].DisplayName)
	}
	if results.Results[0].Latitude != 52.5170365 {
		t.Errorf("Expected latitude 52.5170365, got %f", results.Results[0].Latitude)
	}
	if results.Results[1].Longitude != -72.7457 {
		t.Errorf("Expected longitude -72.7457, got %f", results.Results[1].Longitude)
	}
}

func TestClientSearchSkipsBadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"display_name":"Broken","lat":"not-a-number","lon":"13.38"},
			{"display_name":"Berlin, Germany","lat":"52.51","lon":"13.38"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "HeatControlAPI/1.0")
	results, err := client.Search(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Results) != 1 {
		t.Fatalf("Expected 1 result after skipping bad coordinates, got %d", len(results.Results))
	}
}

func TestClientSearchNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "HeatControlAPI/1.0")
	results, err := client.Search(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Results) != 0 {
		t.Errorf("Expected empty results, got %d", len(results.Results))
	}
}

func TestClientSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "HeatControlAPI/1.0")
	if _, err := client.Search(context.Background(), "Berlin"); err == nil {
		t.Error("Expected error for upstream failure")
	}
}
