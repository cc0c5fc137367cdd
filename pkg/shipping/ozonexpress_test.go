package shipping

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-service/internal/model"
)

func testOrder() *model.Order {
	return &model.Order{
		ID:            42,
		OrderNumber:   "ORD-000042",
		CustomerName:  "Sara B",
		CustomerPhone: "0612345678",
		TotalAmount:   250,
		Status:        model.StatusProcessing,
		Items: []model.OrderItem{
			{ProductID: 3, ProductName: "Oversized Tee", Quantity: 2, Price: 100},
			{ProductID: 8, ProductName: "Tote Bag", Quantity: 1, Price: 50},
		},
		ShippingAddress: model.ShippingAddress{City: "Agadir", Address: "Rue 5", Note: "call first"},
	}
}

func TestAddParcelSendsForm(t *testing.T) {
	var gotPath string
	var fields map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = make(map[string]string)
		for key, values := range r.MultipartForm.Value {
			fields[key] = values[0]
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "cust-1", "key-1", zap.NewNop())
	err := client.AddParcel(testOrder())
	require.NoError(t, err)

	assert.Equal(t, "/customers/cust-1/key-1/add-parcel", gotPath)
	assert.Equal(t, "Sara B", fields["parcel-receiver"])
	assert.Equal(t, "0612345678", fields["parcel-phone"])
	assert.Equal(t, "Agadir", fields["parcel-city"])
	assert.Equal(t, "Rue 5", fields["parcel-address"])
	assert.Equal(t, "call first", fields["parcel-note"])
	assert.Equal(t, "250.00", fields["parcel-price"])
	assert.Equal(t, "Oversized Tee, Tote Bag", fields["parcel-nature"])
	assert.Equal(t, "0", fields["parcel-stock"])
	assert.Equal(t, "ORD-000042", fields["tracking-number"])
	assert.JSONEq(t, `[{"ref":"3","qnty":2},{"ref":"8","qnty":1}]`, fields["products"])
}

func TestAddParcelCarrierRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad parcel", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, "cust-1", "key-1", zap.NewNop())
	err := client.AddParcel(testOrder())
	assert.Error(t, err)
}

func TestCities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"CITIES":{"1":{"ID":"1","NAME":"Agadir"},"2":{"ID":"2","NAME":"Casablanca"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "cust-1", "key-1", zap.NewNop())
	cities, err := client.Cities()
	require.NoError(t, err)
	require.Len(t, cities, 2)

	names := []string{cities[0].Name, cities[1].Name}
	assert.ElementsMatch(t, []string{"Agadir", "Casablanca"}, names)
}

func TestCitiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "cust-1", "key-1", zap.NewNop())
	_, err := client.Cities()
	assert.Error(t, err)
}
