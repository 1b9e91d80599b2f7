//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-inventory-api/test/pact"

	inventoryserver "github.com/Apurer/go-gin-inventory-api/go"
	catalogmemory "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/facade"
	inventoryobs "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/application"
	ordermemory "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/adapters/memory"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestInventoryProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset()
		return nil, nil
	}
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateCatalogSeeded:  reset,
			pacttest.StateProductMissing: reset,
			pacttest.StateLowStock:       reset,
		},
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a freshly seeded router on every reset.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(app)
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	service := inventoryobs.New(inventoryapp.NewService(catalogmemory.NewSeededStore(), ordermemory.NewLedger()))
	router := gin.New()
	router.Use(gin.Recovery())
	router = inventoryserver.NewRouterWithGinEngine(router, inventoryserver.ApiHandleFunctions{
		InventoryAPI: inventoryserver.NewInventoryAPI(facade.New(service)),
	})
	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
}

func (a *contractProviderApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	h := a.handler
	a.mu.RUnlock()
	h.ServeHTTP(w, r)
}
