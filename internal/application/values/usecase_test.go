package values_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/values"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type pair struct {
	companyUniqueID string
	fieldID         int64
}

// mockValueRepo almacén EAV en memoria.
type mockValueRepo struct {
	store   map[pair]string
	inserts int
	upserts int
}

func newMockValueRepo() *mockValueRepo {
	return &mockValueRepo{store: map[pair]string{}}
}

func (m *mockValueRepo) Upsert(_ context.Context, companyUniqueID string, fieldID int64, value string) error {
	m.upserts++
	m.store[pair{companyUniqueID, fieldID}] = value
	return nil
}

func (m *mockValueRepo) Insert(_ context.Context, companyUniqueID string, fieldID int64, value string) error {
	m.inserts++
	m.store[pair{companyUniqueID, fieldID}] = value
	return nil
}

func (m *mockValueRepo) Exists(_ context.Context, companyUniqueID string, fieldID int64) (bool, error) {
	_, ok := m.store[pair{companyUniqueID, fieldID}]
	return ok, nil
}

// mockCustomerRepo solo implementa Exists; el resto no se usa en este caso de uso.
type mockCustomerRepo struct {
	existing map[string]bool
}

func (m *mockCustomerRepo) Exists(_ context.Context, companyUniqueID string) (bool, error) {
	return m.existing[companyUniqueID], nil
}

func (m *mockCustomerRepo) GetByCompanyUniqueID(context.Context, string) (*entity.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) List(context.Context) ([]*entity.Customer, error)  { return nil, nil }
func (m *mockCustomerRepo) ListRows(context.Context) ([]repository.ProjectionRow, error) {
	return nil, nil
}
func (m *mockCustomerRepo) SearchRows(context.Context, string) ([]repository.ProjectionRow, error) {
	return nil, nil
}
func (m *mockCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (m *mockCustomerRepo) DeleteByID(context.Context, int64) error        { return nil }

type mockTxRunner struct {
	values     *mockValueRepo
	customers  *mockCustomerRepo
	rolledBack bool
}

func (m *mockTxRunner) RunValues(_ context.Context, fn func(repository.FieldValueRepository, repository.CustomerRepository) error) error {
	if err := fn(m.values, m.customers); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

func buildUseCase(existingCustomers ...string) (*values.UseCase, *mockValueRepo, *mockTxRunner) {
	repo := newMockValueRepo()
	customers := &mockCustomerRepo{existing: map[string]bool{}}
	for _, id := range existingCustomers {
		customers.existing[id] = true
	}
	tx := &mockTxRunner{values: repo, customers: customers}
	return values.NewUseCase(tx), repo, tx
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_SinClienteOBatchVacio_RetornaInvalidInput(t *testing.T) {
	uc, _, _ := buildUseCase("CLI001")

	err := uc.Upsert(context.Background(), "", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 1, FieldValue: strPtr("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin id de cliente debe fallar")

	err = uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "batch vacío debe fallar")
}

func TestUpsert_ItemIncompleto_RetornaMissingField(t *testing.T) {
	uc, repo, tx := buildUseCase("CLI001")

	err := uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{
			{FieldID: 1, FieldValue: strPtr("ok")},
			{FieldID: 0, FieldValue: strPtr("sin campo")}, // fieldId ausente
		},
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.True(t, tx.rolledBack, "un item inválido debe revertir el batch entero")
	assert.Equal(t, 1, repo.upserts, "el item válido anterior llegó a aplicarse antes del rollback")
}

func TestUpsert_ValorNil_RetornaMissingField(t *testing.T) {
	uc, _, _ := buildUseCase("CLI001")
	err := uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 3, FieldValue: nil}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingField,
		"fieldValue ausente no es lo mismo que cadena vacía")
}

func TestUpsert_CadenaVacia_EsValida(t *testing.T) {
	uc, repo, _ := buildUseCase("CLI001")
	err := uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 3, FieldValue: strPtr("")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "", repo.store[pair{"CLI001", 3}])
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de existencia del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_ClienteInexistente_RetornaNotFound(t *testing.T) {
	uc, repo, _ := buildUseCase() // sin clientes
	err := uc.Upsert(context.Background(), "NADIE", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 1, FieldValue: strPtr("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, repo.store, "no debe escribirse nada para un cliente inexistente")
}

func TestInsertIfAbsent_ClienteInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _ := buildUseCase()
	err := uc.InsertIfAbsent(context.Background(), "NADIE", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 1, FieldValue: strPtr("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Políticas de escritura: upsert vs insert-if-absent
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_SobrescribeValorExistente(t *testing.T) {
	uc, repo, _ := buildUseCase("CLI001")
	repo.store[pair{"CLI001", 7}] = "viejo"

	err := uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 7, FieldValue: strPtr("nuevo")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", repo.store[pair{"CLI001", 7}])
}

func TestUpsert_EsIdempotente(t *testing.T) {
	uc, repo, _ := buildUseCase("CLI001")
	in := dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{{FieldID: 7, FieldValue: strPtr("mismo")}},
	}
	require.NoError(t, uc.Upsert(context.Background(), "CLI001", in))
	require.NoError(t, uc.Upsert(context.Background(), "CLI001", in))
	assert.Equal(t, "mismo", repo.store[pair{"CLI001", 7}])
	assert.Len(t, repo.store, 1)
}

func TestInsertIfAbsent_SaltaParesExistentes(t *testing.T) {
	uc, repo, _ := buildUseCase("CLI001")
	repo.store[pair{"CLI001", 7}] = "original"

	err := uc.InsertIfAbsent(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{
			{FieldID: 7, FieldValue: strPtr("intruso")}, // ya existe: se salta
			{FieldID: 8, FieldValue: strPtr("nuevo")},   // no existe: se inserta
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "original", repo.store[pair{"CLI001", 7}],
		"insert-if-absent nunca sobrescribe")
	assert.Equal(t, "nuevo", repo.store[pair{"CLI001", 8}])
	assert.Equal(t, 1, repo.inserts, "solo el par ausente genera insert")
}

func TestUpsert_AplicaBatchCompleto(t *testing.T) {
	uc, repo, _ := buildUseCase("CLI001")
	err := uc.Upsert(context.Background(), "CLI001", dto.ApplyValuesRequest{
		CustomFields: []dto.FieldValueInput{
			{FieldID: 1, FieldValue: strPtr("a")},
			{FieldID: 2, FieldValue: strPtr("b")},
			{FieldID: 3, FieldValue: strPtr("c")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, repo.store, 3)
	assert.Equal(t, 3, repo.upserts)
}
