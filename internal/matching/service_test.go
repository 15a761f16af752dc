package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
)

func TestService_Learn(t *testing.T) {
	type args struct {
		pattern string
		agency  forecast.AgencyID
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *matching.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{pattern: "  ACME Corp ", agency: "acme"},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateAlias(gomock.Any(), "ACME Corp", forecast.AgencyID("acme")).Return(nil)
			},
		},
		{
			name:    "EmptyPattern",
			args:    args{pattern: " ", agency: "acme"},
			wantErr: matching.ErrEmptyAlias,
		},
		{
			name:    "EmptyAgency",
			args:    args{pattern: "ACME"},
			wantErr: matching.ErrEmptyAlias,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := matching.NewService(repo).Learn(context.Background(), tt.args.pattern, tt.args.agency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindAgency(gomock.Any(), "ACME Corp Lda").Return(forecast.AgencyID("acme"), nil).Times(1)
	repo.EXPECT().FindAgency(gomock.Any(), "Globex").Return(forecast.AgencyID(""), nil).Times(1)

	snap := forecast.Snapshot{
		Invoices: []forecast.Invoice{
			{ID: uuid.New(), AgencyID: "ACME Corp Lda"},
			{ID: uuid.New(), AgencyID: forecast.Unassigned},
		},
		QuotaTargets: []forecast.QuotaTarget{
			{ID: uuid.New(), AgencyID: "ACME Corp Lda"},
			{ID: uuid.New(), AgencyID: "Globex"},
		},
		ProjectForecasts: []forecast.ProjectForecast{
			{ID: uuid.New(), Link: forecast.ProspectLink{Name: "ACME Corp Lda"}},
		},
	}

	got, err := matching.NewService(repo).Resolve(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, forecast.AgencyID("acme"), got.Invoices[0].AgencyID)
	assert.Equal(t, forecast.Unassigned, got.Invoices[1].AgencyID)
	assert.Equal(t, forecast.AgencyID("acme"), got.QuotaTargets[0].AgencyID)
	assert.Equal(t, forecast.AgencyID("Globex"), got.QuotaTargets[1].AgencyID)
	assert.Equal(t, forecast.ProspectLink{Name: "ACME Corp Lda"}, got.ProjectForecasts[0].Link)
}

func TestService_Resolve_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindAgency(gomock.Any(), "acme").Return(forecast.AgencyID(""), errors.New("db down"))

	snap := forecast.Snapshot{Invoices: []forecast.Invoice{{AgencyID: "acme"}, {AgencyID: "globex"}}}

	_, err := matching.NewService(repo).Resolve(context.Background(), snap)
	assert.ErrorContains(t, err, `resolving agency "acme"`)
}
