package geocode

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"imoveis-sp/utils"
)

func TestStaticResolvesKnownBairros(t *testing.T) {
	s := NewStatic()
	coords := s.Resolve([]string{"Pinheiros", "Bairro Inexistente"})

	c, ok := coords["Pinheiros"]
	if !ok || c == nil {
		t.Fatal("Pinheiros should resolve from the built-in table")
	}
	if c.Lat > -23 || c.Lat < -24 {
		t.Errorf("Pinheiros latitude out of São Paulo range: %f", c.Lat)
	}

	unresolved, ok := coords["Bairro Inexistente"]
	if !ok {
		t.Error("unknown names must still appear in the result map")
	}
	if unresolved != nil {
		t.Errorf("unknown name must be unresolved, got %+v", unresolved)
	}
}

func TestStaticFromFileOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bairros.yml")
	content := "Pinheiros:\n  lat: -1.0\n  lon: -2.0\nVila Nova:\n  lat: -23.6\n  lon: -46.7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewStaticFromFile(path)
	if err != nil {
		t.Fatalf("NewStaticFromFile: %v", err)
	}

	coords := s.Resolve([]string{"Pinheiros", "Vila Nova", "Moema"})
	if c := coords["Pinheiros"]; c == nil || c.Lat != -1.0 {
		t.Errorf("file entry should override built-in: got %+v", c)
	}
	if c := coords["Vila Nova"]; c == nil || c.Lon != -46.7 {
		t.Errorf("file-only entry missing: got %+v", c)
	}
	if c := coords["Moema"]; c == nil {
		t.Error("built-in entries must survive the merge")
	}
}

func TestNominatimCachesLookupsAndFailures(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(q, "Pinheiros") {
			fmt.Fprint(w, `[{"lat":"-23.5629","lon":"-46.7015"}]`)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()

	g := NewNominatim(ts.URL, "São Paulo", "Brasil", 0, utils.NewLogger())

	first := g.Resolve([]string{"Pinheiros", "Bairro Fantasma"})
	if c := first["Pinheiros"]; c == nil || c.Lat != -23.5629 {
		t.Errorf("Pinheiros: got %+v, want resolved coordinate", c)
	}
	if first["Bairro Fantasma"] != nil {
		t.Error("no-match must come back unresolved")
	}

	second := g.Resolve([]string{"Pinheiros", "Bairro Fantasma"})
	if second["Bairro Fantasma"] != nil {
		t.Error("cached failure must stay unresolved")
	}

	// Two distinct names, each looked up at most once across both calls.
	if got := atomic.LoadInt64(&calls); got != 2 {
		t.Errorf("external lookups: got %d, want 2", got)
	}
}

func TestNominatimSwallowsServerErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	g := NewNominatim(ts.URL, "São Paulo", "Brasil", 0, utils.NewLogger())
	coords := g.Resolve([]string{"Moema"})
	if coords["Moema"] != nil {
		t.Errorf("server error must degrade to unresolved, got %+v", coords["Moema"])
	}
}
