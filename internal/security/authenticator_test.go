package security

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"testing"
)

type SignerMock struct {
	mock.Mock
}

func (m *SignerMock) Sign(_ string) string {
	args := m.Called()

	return args.String(0)
}

func (m *SignerMock) Parse(key string) (string, error) {
	args := m.Called(key)

	return args.String(0), args.Error(1)
}

func TestAuthenticator_Authenticate(t *testing.T) {
	var (
		key        = "pk_id.sign"
		invalidKey = "pk_id.invalid"
		id         = "id"
		request    = httptest.NewRequest("", "/", nil)
		signer     = &SignerMock{}
	)
	signer.On("Parse", key).Return(id, nil).Once()
	signer.On("Parse", invalidKey).Return("", errors.New("")).Once()
	authenticator := NewAuthenticator(signer)

	_, err := authenticator.KeyID(request)
	assert.Error(t, err, "запрос без ключа")

	_, err = authenticator.Authenticate(invalidKey, request)
	assert.Error(t, err, "невалидный ключ")

	request, err = authenticator.Authenticate(key, request)
	require.NoError(t, err)
	found, _ := authenticator.KeyID(request)
	assert.Equal(t, id, found, "успешная аутентификация")

	signer.AssertExpectations(t)
}

func TestAuthenticator_GrantKey(t *testing.T) {
	var (
		secret        = "secret"
		signer        = NewHMACSigner(secret)
		authenticator = NewAuthenticator(signer)
	)

	key, err := authenticator.GrantKey()
	require.NoError(t, err)

	request, err := authenticator.Authenticate(key, httptest.NewRequest("", "/", nil))
	require.NoError(t, err, "выпущенный ключ проходит проверку")
	id, err := authenticator.KeyID(request)
	require.NoError(t, err)
	assert.Equal(t, key, signer.Sign(id))
}
