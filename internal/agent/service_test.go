package agent_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmutua/metertrack/internal/agent"
)

func TestService_Create(t *testing.T) {
	creator := uuid.New()

	tests := []struct {
		name    string
		params  agent.CreateParams
		wantErr string
	}{
		{
			name: "valid local phone",
			params: agent.CreateParams{
				Name:      "Otieno Hardware",
				Phone:     "0712345678",
				Location:  "Kondele",
				County:    "Kisumu",
				CreatedBy: creator,
			},
		},
		{
			name: "valid international phone with spaces",
			params: agent.CreateParams{
				Name:      "Wambui Electricals",
				Phone:     "+254 712 345 678",
				County:    "Nyeri",
				CreatedBy: creator,
			},
		},
		{
			name: "missing name",
			params: agent.CreateParams{
				Phone:  "0712345678",
				County: "Kisumu",
			},
			wantErr: "name is required",
		},
		{
			name: "bad phone",
			params: agent.CreateParams{
				Name:   "Otieno Hardware",
				Phone:  "12345",
				County: "Kisumu",
			},
			wantErr: "invalid phone number",
		},
		{
			name: "missing county",
			params: agent.CreateParams{
				Name:  "Otieno Hardware",
				Phone: "0712345678",
			},
			wantErr: "county is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := agent.NewMockRepository(ctrl)
			svc := agent.NewService(repo)

			if tt.wantErr == "" {
				repo.EXPECT().CreateAgent(gomock.Any(), gomock.Any()).Return(nil)
			}

			a, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, a.Active)
			assert.NotEqual(t, uuid.Nil, a.ID)
			assert.NotContains(t, a.Phone, " ")
		})
	}
}

func TestService_Update_RejectsBadPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := agent.NewMockRepository(ctrl)
	svc := agent.NewService(repo)

	err := svc.Update(context.Background(), &agent.Agent{
		ID:    uuid.New(),
		Name:  "Otieno Hardware",
		Phone: "nope",
	})
	assert.ErrorContains(t, err, "invalid phone number")
}

func TestService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := agent.NewMockRepository(ctrl)
	svc := agent.NewService(repo)

	id := uuid.New()
	repo.EXPECT().SetActive(gomock.Any(), id, false).Return(nil)

	require.NoError(t, svc.Deactivate(context.Background(), id))
}
