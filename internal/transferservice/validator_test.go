package transferservice

import (
	"testing"

	"github.com/go-ald/benefit-bank/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	testCases := []struct {
		name    string
		req     domain.TransferRequest
		wantErr error
	}{
		{
			name: "OK",
			req: domain.TransferRequest{
				SourceID:      1,
				DestinationID: 2,
				Amount:        decimal.RequireFromString("30.00"),
			},
		},
		{
			name: "Missing source id",
			req: domain.TransferRequest{
				DestinationID: 2,
				Amount:        decimal.RequireFromString("30.00"),
			},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name: "Missing destination id",
			req: domain.TransferRequest{
				SourceID: 1,
				Amount:   decimal.RequireFromString("30.00"),
			},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name: "Same source and destination",
			req: domain.TransferRequest{
				SourceID:      1,
				DestinationID: 1,
				Amount:        decimal.RequireFromString("30.00"),
			},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name: "Zero amount",
			req: domain.TransferRequest{
				SourceID:      1,
				DestinationID: 2,
				Amount:        decimal.Zero,
			},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name: "Negative amount",
			req: domain.TransferRequest{
				SourceID:      1,
				DestinationID: 2,
				Amount:        decimal.RequireFromString("-30.00"),
			},
			wantErr: domain.ErrInvalidTransfer,
		},
		{
			name: "Too many decimal places",
			req: domain.TransferRequest{
				SourceID:      1,
				DestinationID: 2,
				Amount:        decimal.RequireFromString("30.001"),
			},
			wantErr: domain.ErrInvalidTransfer,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)

			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)

			// Validation is deterministic: a second run on the same request
			// yields the same verdict.
			require.ErrorIs(t, ValidateRequest(tc.req), tc.wantErr)
		})
	}
}
