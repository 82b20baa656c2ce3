package customers

import (
	"sort"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// GroupCustomerRows reagrupa las filas planas del join en una vista por
// cliente con su lista anidada de campos personalizados.
//
// Transformación pura y determinista: el resultado depende solo del conjunto
// de filas, no de su orden de llegada. Salida ordenada por customer_id
// ascendente y, dentro de cada cliente, por field_name ascendente. Los pares
// con nombre o valor vacío (lado nulo del LEFT JOIN) se omiten; un cliente sin
// valores EAV aparece igualmente, con lista vacía.
func GroupCustomerRows(rows []repository.ProjectionRow) []dto.CustomerWithFieldsResponse {
	byID := make(map[int64]*dto.CustomerWithFieldsResponse)
	for _, row := range rows {
		view, ok := byID[row.Customer.ID]
		if !ok {
			view = &dto.CustomerWithFieldsResponse{
				CustomerResponse: toCustomerResponse(&row.Customer),
				CustomFields:     []dto.CustomFieldValueView{},
			}
			byID[row.Customer.ID] = view
		}
		if row.FieldName == "" || row.FieldValue == "" {
			continue
		}
		view.CustomFields = append(view.CustomFields, dto.CustomFieldValueView{
			FieldName:  row.FieldName,
			FieldValue: row.FieldValue,
		})
	}

	out := make([]dto.CustomerWithFieldsResponse, 0, len(byID))
	for _, view := range byID {
		sort.Slice(view.CustomFields, func(i, j int) bool {
			return view.CustomFields[i].FieldName < view.CustomFields[j].FieldName
		})
		out = append(out, *view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}
