package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/dto"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/middleware"
	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/service"
)

type stubVentaService struct {
	registradas int
	usuarioID   uuid.UUID
}

var _ service.VentaService = (*stubVentaService)(nil)

func (s *stubVentaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	s.registradas++
	s.usuarioID = usuarioID
	return &dto.VentaResponse{ID: uuid.NewString(), MetodoPago: req.MetodoPago}, nil
}

func (s *stubVentaService) AnularVenta(ctx context.Context, id uuid.UUID, motivo string) error {
	return nil
}

func (s *stubVentaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	return nil, service.ErrVentaNoEncontrada
}

func (s *stubVentaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	return &dto.VentaListResponse{}, nil
}

func registrarVentaContext(t *testing.T, claims *middleware.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := `{"items":[{"producto_id":"` + uuid.NewString() + `","cantidad":1}],"metodo_pago":"efectivo"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/ventas", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ClaimsKey, claims)
	return c, w
}

func TestRegistrarVentaUsaUsuarioDelToken(t *testing.T) {
	svc := &stubVentaService{}
	h := NewVentasHandler(svc)

	usuarioID := uuid.New()
	c, w := registrarVentaContext(t, &middleware.JWTClaims{
		UserID: usuarioID.String(),
		Email:  "vendedor@saltysweety.com",
		Rol:    "vendedor",
	})

	h.RegistrarVenta(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.registradas)
	assert.Equal(t, usuarioID, svc.usuarioID)
}

func TestRegistrarVentaRechazaClaimMalFormado(t *testing.T) {
	svc := &stubVentaService{}
	h := NewVentasHandler(svc)

	c, w := registrarVentaContext(t, &middleware.JWTClaims{
		UserID: "no-es-un-uuid",
		Email:  "vendedor@saltysweety.com",
		Rol:    "vendedor",
	})

	h.RegistrarVenta(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.registradas, "la venta nunca llega al servicio")
}
