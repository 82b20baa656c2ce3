package history_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/history"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
)

// mockChangeLogRepo almacén append-only en memoria; List reproduce el orden
// del repositorio real (más reciente primero, id descendente como desempate).
type mockChangeLogRepo struct {
	entries []*entity.ChangeLogEntry
	nextID  int64
}

func (m *mockChangeLogRepo) Append(_ context.Context, entry *entity.ChangeLogEntry) error {
	m.nextID++
	e := *entry
	e.ID = m.nextID
	m.entries = append(m.entries, &e)
	return nil
}

func (m *mockChangeLogRepo) ListByCompanyUniqueID(_ context.Context, companyUniqueID string) ([]*entity.ChangeLogEntry, error) {
	var out []*entity.ChangeLogEntry
	for _, e := range m.entries {
		if e.CompanyUniqueID == companyUniqueID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func buildUseCase() (*history.UseCase, *mockChangeLogRepo) {
	repo := &mockChangeLogRepo{}
	return history.NewUseCase(repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Append
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_SinClienteOSinCambios_RetornaInvalidInput(t *testing.T) {
	uc, _ := buildUseCase()

	err := uc.Append(context.Background(), "", []dto.ChangeInput{{Field: "phone_no"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Append(context.Background(), "CLI001", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_RegistraUnaFilaPorCambio(t *testing.T) {
	uc, repo := buildUseCase()

	err := uc.Append(context.Background(), "CLI001", []dto.ChangeInput{
		{Field: "phone_no", OldValue: "111", NewValue: "222"},
		{Field: "disposition", OldValue: "nuevo", NewValue: "contactado"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 2)
	assert.Equal(t, "phone_no", repo.entries[0].Field)
	assert.Equal(t, "111", repo.entries[0].OldValue)
	assert.Equal(t, "222", repo.entries[0].NewValue)
	assert.False(t, repo.entries[0].ChangedAt.IsZero(), "cada entrada lleva timestamp")
}

func TestAppend_CambioDeCampoPersonalizado_SeEtiquetaConElID(t *testing.T) {
	uc, repo := buildUseCase()

	err := uc.Append(context.Background(), "CLI001", []dto.ChangeInput{
		{IsCustomField: true, FieldID: 42, OldValue: "web", NewValue: "referido"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Custom Field 42", repo.entries[0].Field,
		"los cambios de campos dinámicos se etiquetan con su id, no con el nombre")
}

func TestAppend_ListaVaciaNoNula_EsValida(t *testing.T) {
	// changes == nil es inválido; lista vacía explícita registra cero filas.
	uc, repo := buildUseCase()
	err := uc.Append(context.Background(), "CLI001", []dto.ChangeInput{})
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fetch
// ──────────────────────────────────────────────────────────────────────────────

func TestFetch_SinHistorial_RetornaListaVacia(t *testing.T) {
	uc, _ := buildUseCase()
	out, err := uc.Fetch(context.Background(), "CLI001")
	require.NoError(t, err)
	assert.NotNil(t, out, "sin historial es 200 con lista vacía, no un error")
	assert.Empty(t, out)
}

func TestFetch_MasRecientePrimero(t *testing.T) {
	uc, repo := buildUseCase()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, field := range []string{"phone_no", "address", "disposition"} {
		require.NoError(t, repo.Append(context.Background(), &entity.ChangeLogEntry{
			CompanyUniqueID: "CLI001",
			Field:           field,
			ChangedAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := uc.Fetch(context.Background(), "CLI001")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "disposition", out[0].Field, "la entrada más reciente va primero")
	assert.Equal(t, "phone_no", out[2].Field)
}

func TestFetch_SoloDelClientePedido(t *testing.T) {
	uc, _ := buildUseCase()
	require.NoError(t, uc.Append(context.Background(), "CLI001", []dto.ChangeInput{{Field: "phone_no"}}))
	require.NoError(t, uc.Append(context.Background(), "CLI002", []dto.ChangeInput{{Field: "address"}}))

	out, err := uc.Fetch(context.Background(), "CLI002")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CLI002", out[0].CompanyUniqueID)
}

// ──────────────────────────────────────────────────────────────────────────────
// LogAndFetch
// ──────────────────────────────────────────────────────────────────────────────

func TestLogAndFetch_DevuelveHistorialActualizado(t *testing.T) {
	uc, _ := buildUseCase()
	require.NoError(t, uc.Append(context.Background(), "CLI001", []dto.ChangeInput{
		{Field: "phone_no", OldValue: "111", NewValue: "222"},
	}))

	resp, err := uc.LogAndFetch(context.Background(), dto.LogChangesRequest{
		CompanyUniqueID: "CLI001",
		Changes: []dto.ChangeInput{
			{IsCustomField: true, FieldID: 7, OldValue: "", NewValue: "vip"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	require.Len(t, resp.ChangeHistory, 2, "la respuesta incluye lo recién registrado y lo previo")
	fields := []string{resp.ChangeHistory[0].Field, resp.ChangeHistory[1].Field}
	assert.Contains(t, fields, "Custom Field 7")
	assert.Contains(t, fields, "phone_no")
}

func TestLogAndFetch_EntradaInvalida_Propaga(t *testing.T) {
	uc, _ := buildUseCase()
	_, err := uc.LogAndFetch(context.Background(), dto.LogChangesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
