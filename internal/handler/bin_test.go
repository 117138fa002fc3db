package handler

import (
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/ivanpodgorny/cardcheck/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"testing"
)

type BINRangeProviderMock struct {
	mock.Mock
}

func (m *BINRangeProviderMock) Ranges(prefix string) ([]entity.BINRange, entity.LoadState) {
	args := m.Called(prefix)

	return args.Get(0).([]entity.BINRange), args.Get(1).(entity.LoadState)
}

func (m *BINRangeProviderMock) Retry(prefix string, _ binrange.Completion) {
	m.Called(prefix)
}

func newTestValidator(t *testing.T) *validator.Validator {
	engine, err := validator.NewEngine()
	require.NoError(t, err)

	return validator.New(engine)
}

func TestBIN_Get(t *testing.T) {
	var (
		loadedPrefix = "6235512345"
		emptyPrefix  = "411111"
		ranges       = []entity.BINRange{
			{Prefix: "623551", PANLength: 19, Brand: entity.BrandUnionPay},
		}
		provider = &BINRangeProviderMock{}
	)

	provider.On("Ranges", loadedPrefix).Return(ranges, entity.LoadStateLoaded).Once()
	provider.On("Ranges", emptyPrefix).Return([]entity.BINRange(nil), entity.LoadStateNotLoaded).Once()
	handler := NewBIN(provider, nil, newTestValidator(t))

	tests := []struct {
		name           string
		prefix         string
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "загруженные диапазоны",
			prefix:         loadedPrefix,
			wantStatusCode: http.StatusOK,
			wantBody:       `{"prefix":"623551","state":"loaded","ranges":[{"prefix":"623551","pan_length":19,"brand":"unionpay"}]}`,
		},
		{
			name:           "диапазоны не загружены",
			prefix:         emptyPrefix,
			wantStatusCode: http.StatusOK,
			wantBody:       `{"prefix":"411111","state":"not_loaded","ranges":[]}`,
		},
		{
			name:           "короткий префикс",
			prefix:         "62355",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "префикс не из цифр",
			prefix:         "62355a",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "префикс длиннее номера",
			prefix:         "62355123456789012345",
			wantStatusCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sendTestRequestWithPrefix(http.MethodGet, tt.prefix, handler.Get)
			assert.Equal(t, tt.wantStatusCode, result.StatusCode)
			if tt.wantBody != "" {
				b, err := io.ReadAll(result.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantBody, string(b))
			}
			require.NoError(t, result.Body.Close())
		})
	}
	provider.AssertExpectations(t)
}

func TestBIN_Retry(t *testing.T) {
	var (
		prefix        = "623551"
		provider      = &BINRangeProviderMock{}
		authenticator = &AuthenticatorMock{}
	)

	provider.On("Retry", prefix).Return().Once()
	authenticator.On("KeyID").Return("id", nil).Once()
	handler := BIN{
		ranges:        provider,
		authenticator: authenticator,
		validator:     newTestValidator(t),
	}

	result := sendTestRequestWithPrefix(http.MethodPost, prefix, handler.Retry)
	assert.Equal(t, http.StatusAccepted, result.StatusCode)
	require.NoError(t, result.Body.Close())

	result = sendTestRequestWithPrefix(http.MethodPost, "abc", handler.Retry)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	require.NoError(t, result.Body.Close())

	provider.AssertExpectations(t)
	authenticator.AssertExpectations(t)
}
