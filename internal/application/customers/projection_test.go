package customers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multycomm/crm-api/internal/application/customers"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

func customer(id int64, companyUniqueID, firstName string) entity.Customer {
	return entity.Customer{
		ID:              id,
		FirstName:       firstName,
		CompanyUniqueID: companyUniqueID,
		DateCreated:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func row(c entity.Customer, fieldName, fieldValue string) repository.ProjectionRow {
	return repository.ProjectionRow{Customer: c, FieldName: fieldName, FieldValue: fieldValue}
}

func TestGroupCustomerRows_AgrupaPorCliente(t *testing.T) {
	ana := customer(1, "CLI001", "Ana")
	bruno := customer(2, "CLI002", "Bruno")

	out := customers.GroupCustomerRows([]repository.ProjectionRow{
		row(ana, "origen", "web"),
		row(ana, "nivel_interes", "alto"),
		row(bruno, "origen", "referido"),
	})

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].CustomerID)
	assert.Len(t, out[0].CustomFields, 2)
	assert.Equal(t, int64(2), out[1].CustomerID)
	assert.Len(t, out[1].CustomFields, 1)
}

func TestGroupCustomerRows_ClienteSinValores_ListaVaciaNoNula(t *testing.T) {
	// Lado derecho del LEFT JOIN nulo: COALESCE deja cadenas vacías.
	solo := customer(1, "CLI001", "Ana")
	out := customers.GroupCustomerRows([]repository.ProjectionRow{
		row(solo, "", ""),
	})

	require.Len(t, out, 1)
	require.NotNil(t, out[0].CustomFields,
		"custom_fields debe serializar como [] y nunca como null")
	assert.Empty(t, out[0].CustomFields)
}

func TestGroupCustomerRows_OmiteParesConNombreOValorVacio(t *testing.T) {
	ana := customer(1, "CLI001", "Ana")
	out := customers.GroupCustomerRows([]repository.ProjectionRow{
		row(ana, "origen", "web"),
		row(ana, "", "huérfano"),  // definición borrada o join nulo
		row(ana, "sin_valor", ""), // valor vacío no aporta
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].CustomFields, 1)
	assert.Equal(t, "origen", out[0].CustomFields[0].FieldName)
}

func TestGroupCustomerRows_DeterministaAnteOrdenDeLlegada(t *testing.T) {
	ana := customer(1, "CLI001", "Ana")
	bruno := customer(2, "CLI002", "Bruno")

	ordenado := []repository.ProjectionRow{
		row(ana, "apellido_materno", "García"),
		row(ana, "origen", "web"),
		row(bruno, "origen", "referido"),
	}
	desordenado := []repository.ProjectionRow{
		row(bruno, "origen", "referido"),
		row(ana, "origen", "web"),
		row(ana, "apellido_materno", "García"),
	}

	a := customers.GroupCustomerRows(ordenado)
	b := customers.GroupCustomerRows(desordenado)
	assert.Equal(t, a, b,
		"el resultado depende del conjunto de filas, no de su orden")
}

func TestGroupCustomerRows_SalidaOrdenada(t *testing.T) {
	carla := customer(3, "CLI003", "Carla")
	ana := customer(1, "CLI001", "Ana")

	out := customers.GroupCustomerRows([]repository.ProjectionRow{
		row(carla, "zona", "sur"),
		row(carla, "antiguedad", "2019"),
		row(ana, "origen", "web"),
	})

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].CustomerID, "clientes ordenados por id ascendente")
	assert.Equal(t, int64(3), out[1].CustomerID)
	require.Len(t, out[1].CustomFields, 2)
	assert.Equal(t, "antiguedad", out[1].CustomFields[0].FieldName,
		"campos ordenados por nombre ascendente dentro de cada cliente")
}

func TestGroupCustomerRows_EntradaVacia(t *testing.T) {
	out := customers.GroupCustomerRows(nil)
	assert.Empty(t, out)
}
