package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/podocare-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "wrk-001", "admin", "podocare", 5)
	require.NoError(t, err)

	workerID, role, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "wrk-001", workerID)
	assert.Equal(t, "admin", role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "wrk-002", "podologist", "podocare", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := pkgjwt.Generate("secreto", "wrk-002", "podologist", "podocare", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("secreto", expired)
	assert.Error(t, err, "token expirado")

	_, _, err = pkgjwt.Parse("", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.Generate("", "wrk-002", "admin", "podocare", 5)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
