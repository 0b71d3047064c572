package postgres

import (
	"fmt"
	"strings"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// buildMovementFilterClause constructs SQL filter clauses for movement queries.
// The alias prefixes product columns; movement columns always use "m.".
func buildMovementFilterClause(filter *domain.ReportFilter, alias string, startIndex int) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var (
		clauses []string
		args    []interface{}
	)
	prefix := normalizeAlias(alias)
	idx := startIndex

	if filter.Supplier != "" {
		clauses = append(clauses, fmt.Sprintf("%ssupplier = $%d", prefix, idx))
		args = append(args, filter.Supplier)
		idx++
	}

	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("%scategory = $%d", prefix, idx))
		args = append(args, filter.Category)
		idx++
	}

	if filter.ProductCode != "" {
		clauses = append(clauses, fmt.Sprintf("%scode ILIKE $%d", prefix, idx))
		args = append(args, "%"+filter.ProductCode+"%")
		idx++
	}

	if filter.ProductName != "" {
		clauses = append(clauses, fmt.Sprintf("%sname ILIKE $%d", prefix, idx))
		args = append(args, "%"+filter.ProductName+"%")
		idx++
	}

	if filter.ProductType != "" {
		clauses = append(clauses, fmt.Sprintf("%sproduct_type = $%d", prefix, idx))
		args = append(args, filter.ProductType)
		idx++
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(clauses, " AND "), args
}

func normalizeAlias(alias string) string {
	if alias == "" {
		return ""
	}
	if !strings.HasSuffix(alias, ".") {
		return alias + "."
	}
	return alias
}

// orderedOnlyClause keeps rows carrying at least one order number. Rows
// failing it cannot be sequenced and are excluded before the ledger runs.
func orderedOnlyClause(alias string) string {
	prefix := normalizeAlias(alias)
	return fmt.Sprintf(" AND (%[1]spurchase_order_number <> '' OR %[1]sshipping_order_number <> '' OR %[1]ssale_number <> '')", prefix)
}
