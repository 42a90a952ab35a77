package handler

import (
	"errors"
	"net/http"
	"reflect"

	"heladopos/internal/apierror"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes. Anything unmapped is
// attached to the context so ErrorHandler logs it and answers a generic 500.
func respondError(c *gin.Context, err error) {
	var stockErr *service.StockInsuficienteError
	switch {
	case errors.Is(err, service.ErrCarritoVacio),
		errors.Is(err, service.ErrMaxGustosExcedido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductoDesconocido),
		errors.Is(err, service.ErrSaborDesconocido),
		errors.Is(err, service.ErrInsumoDesconocido),
		errors.Is(err, service.ErrSucursalDesconocida):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &stockErr),
		errors.Is(err, service.ErrNadaQueCerrar),
		errors.Is(err, service.ErrNombreDuplicado),
		errors.Is(err, service.ErrConflictoReferencial):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrComboCircular):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
