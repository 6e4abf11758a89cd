package validators_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prijslijst/pricelist-backend/api/validators"
	"github.com/prijslijst/pricelist-backend/internal/orders"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
)

func orderBody(extra string) string {
	return fmt.Sprintf(`{
		"shop_id": %q,
		"total": 10,
		"order_info": [{"description": "1 gram", "price": 10, "quantity": 1, "kind_id": %q}]%s
	}`, uuid.NewString(), uuid.NewString(), extra)
}

func TestDecodeOrderBodyToleratesLegacyOrderNumber(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(orderBody(`, "customer_order_id": 4`)))

	var input orders.CreateOrderInput
	require.NoError(t, validators.DecodeJSONBody(r, &input))
	require.NotNil(t, input.CustomerOrderID)
	assert.Equal(t, int64(4), *input.CustomerOrderID)
}

func TestDecodeOrderBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(orderBody(`, "discount": true`)))

	var input orders.CreateOrderInput
	err := validators.DecodeJSONBody(r, &input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
