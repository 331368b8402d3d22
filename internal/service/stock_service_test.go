package service

import (
	"testing"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name    string
		current int
		txType  model.TransactionType
		qty     int
		want    int
		wantErr bool
	}{
		{name: "InAddsUnconditionally", current: 5, txType: model.TxIn, qty: 3, want: 8},
		{name: "InFromZero", current: 0, txType: model.TxIn, qty: 10, want: 10},
		{name: "OutDecrements", current: 5, txType: model.TxOut, qty: 3, want: 2},
		{name: "OutToExactlyZero", current: 3, txType: model.TxOut, qty: 3, want: 0},
		{name: "OutOverdrawFails", current: 2, txType: model.TxOut, qty: 3, wantErr: true},
		{name: "OutFromZeroFails", current: 0, txType: model.TxOut, qty: 1, wantErr: true},
		{name: "AdjustIsRecordedOnly", current: 7, txType: model.TxAdjust, qty: 4, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextQuantity(tt.current, tt.txType, tt.qty, "Widget")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsInsufficientStock(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextQuantityUnknownType(t *testing.T) {
	_, err := nextQuantity(5, model.TransactionType("refund"), 1, "Widget")
	assert.Error(t, err)
	assert.False(t, apperr.IsInsufficientStock(err))
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	_, err := nextQuantity(2, model.TxOut, 5, "Rice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rice")
	assert.Contains(t, err.Error(), "requested 5")
	assert.Contains(t, err.Error(), "available 2")
}
