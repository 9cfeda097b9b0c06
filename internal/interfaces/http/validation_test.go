package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
)

func TestValidateStruct_UsaNombreJSON(t *testing.T) {
	err := validateStruct(&dto.CreateMaterialRequest{Unit: "sak"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "material_name", ve.Field)
	assert.Equal(t, "is required", ve.Reason)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateStruct_Valido(t *testing.T) {
	assert.NoError(t, validateStruct(&dto.CreateCategoryRequest{Name: "Semen"}))
}

func TestValidateStruct_Oneof(t *testing.T) {
	err := validateStruct(&dto.CreateProjectRequest{Name: "Gudang", Status: "cancelled"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "status", ve.Field)
	assert.Contains(t, ve.Reason, "planning ongoing completed")
}
