package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCountryDTO_PayloadOnlyPresentFields(t *testing.T) {
	var d UpdateCountryDTO
	require.NoError(t, json.Unmarshal([]byte(`{"name":"France","vat_rate":20,"is_active":false}`), &d))

	assert.Equal(t, map[string]interface{}{
		"name":      "France",
		"vat_rate":  float64(20),
		"is_active": false,
	}, d.Payload())
}

func TestUpdateHelpArticleDTO_Payload(t *testing.T) {
	var d UpdateHelpArticleDTO
	require.NoError(t, json.Unmarshal([]byte(`{"categoryId":3,"slug":null}`), &d))
	assert.Equal(t, map[string]interface{}{"categoryId": int64(3)}, d.Payload())
}

func TestUpdateOrderStatusDTO_Payload(t *testing.T) {
	d := UpdateOrderStatusDTO{StatusID: 4}
	assert.Equal(t, map[string]interface{}{"statusId": int64(4)}, d.Payload())
}
