package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDealStatusMessage(t *testing.T) {
	investorID := "inv-1"

	tests := []struct {
		name    string
		value   string
		want    *DealStatusMessage
		wantErr bool
	}{
		{
			name:  "full message",
			value: `{"event_type":"deal.status_changed","deal_id":"deal-1","startup_id":"startup-1","investor_id":"inv-1","status":"won"}`,
			want: &DealStatusMessage{
				EventType:  "deal.status_changed",
				DealID:     "deal-1",
				StartupID:  "startup-1",
				InvestorID: &investorID,
				Status:     "won",
			},
		},
		{
			name:  "missing optional ids",
			value: `{"deal_id":"deal-2","startup_id":"startup-1","status":"lost"}`,
			want: &DealStatusMessage{
				DealID:    "deal-2",
				StartupID: "startup-1",
				Status:    "lost",
			},
		},
		{
			name:    "malformed json",
			value:   `{"deal_id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &IncomingMessage{Value: []byte(tt.value)}
			got, err := msg.ParseDealStatusMessage()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
