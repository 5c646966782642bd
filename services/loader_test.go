package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const loaderCSV = "Type,Item Description,Price Per Unit,Est.Hrs,Promaster\n" +
	"Flooring,Vinyl,425,3.5,x\n"

func csvServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoader_PrimarySuccess(t *testing.T) {
	srv := csvServer(t, http.StatusOK, loaderCSV)

	loader := &Loader{PrimaryURL: srv.URL}
	result := loader.Load(context.Background())

	if result.Err != nil {
		t.Fatalf("Load() error = %v", result.Err)
	}
	if result.Source != SourcePrimary {
		t.Errorf("expected primary source, got %q", result.Source)
	}
	if len(result.Catalog.Sections) != 1 || result.Catalog.Sections[0].Name != "Flooring" {
		t.Errorf("unexpected catalog: %+v", result.Catalog)
	}
}

func TestLoader_FallbackURL(t *testing.T) {
	primary := csvServer(t, http.StatusInternalServerError, "boom")
	fallback := csvServer(t, http.StatusOK, loaderCSV)

	loader := &Loader{PrimaryURL: primary.URL, FallbackURL: fallback.URL}
	result := loader.Load(context.Background())

	if result.Err != nil {
		t.Fatalf("Load() error = %v", result.Err)
	}
	if result.Source != SourceFallback {
		t.Errorf("expected fallback source, got %q", result.Source)
	}
}

func TestLoader_SnapshotFallback(t *testing.T) {
	primary := csvServer(t, http.StatusNotFound, "")

	loader := &Loader{
		PrimaryURL: primary.URL,
		Snapshot: []byte(`{"sections": [{"name": "Flooring", "items": [
			{"product": "Vinyl", "materialCost": 425, "laborHours": 3.5, "compatible": ["promaster"]}
		]}], "defaultLaborRate": 110, "taxRate": 8.25}`),
	}
	result := loader.Load(context.Background())

	if result.Err != nil {
		t.Fatalf("Load() error = %v", result.Err)
	}
	if result.Source != SourceSnapshot {
		t.Errorf("expected snapshot source, got %q", result.Source)
	}
	if result.Catalog.DefaultLaborRate != 110 {
		t.Errorf("unexpected labor rate %v", result.Catalog.DefaultLaborRate)
	}
}

func TestLoader_AllAttemptsFail(t *testing.T) {
	primary := csvServer(t, http.StatusBadGateway, "")
	fallback := csvServer(t, http.StatusOK, "") // empty body: no rows

	loader := &Loader{PrimaryURL: primary.URL, FallbackURL: fallback.URL}
	result := loader.Load(context.Background())

	if result.Err == nil {
		t.Fatal("expected a terminal error when every attempt fails")
	}
	if result.Catalog != nil {
		t.Error("no partial catalog may be exposed on failure")
	}
}

func TestLoader_NoURLConfigured(t *testing.T) {
	loader := &Loader{}
	result := loader.Load(context.Background())
	if result.Err == nil {
		t.Fatal("expected error with no sources configured")
	}
}

func TestLoader_MissingRequiredColumnsIsFatal(t *testing.T) {
	srv := csvServer(t, http.StatusOK, "Color,Weight\nred,5\n")

	loader := &Loader{PrimaryURL: srv.URL}
	result := loader.Load(context.Background())
	if result.Err == nil {
		t.Fatal("expected required-column failure to fail the load")
	}
}

func TestLoader_WorkbookSource(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Type", "Item Description", "Price Per Unit", "Est.Hrs", "Promaster"},
		{"Flooring", "Vinyl", 425, 3.5, "x"},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)

	loader := &Loader{PrimaryURL: srv.URL}
	result := loader.Load(context.Background())

	if result.Err != nil {
		t.Fatalf("Load() error = %v", result.Err)
	}
	if len(result.Catalog.Sections) != 1 {
		t.Errorf("unexpected catalog: %+v", result.Catalog)
	}
}

func TestIsWorkbook(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		expect      bool
	}{
		{"xlsx extension", "https://example.com/catalog.xlsx", "", true},
		{"xlsx with query", "https://example.com/catalog.XLSX?download=1", "", true},
		{"spreadsheet content type", "https://example.com/export", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"csv", "https://example.com/catalog.csv", "text/csv", false},
		{"plain", "https://example.com/pub?output=csv", "text/plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWorkbook(tt.url, tt.contentType); got != tt.expect {
				t.Errorf("isWorkbook(%q, %q) = %v, want %v", tt.url, tt.contentType, got, tt.expect)
			}
		})
	}
}
