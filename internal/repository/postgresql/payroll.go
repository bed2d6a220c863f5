package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/payroll"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.pay_period_start, p.pay_period_end,
	p.base_salary, p.overtime_pay, p.bonus, p.deductions, p.tax_deduction,
	p.gross_pay, p.net_pay, p.status, p.processed_by, p.processed_at,
	p.created_at, p.updated_at,
	u.full_name, e.employee_code, e.department
`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var record payroll.Payroll
	err := row.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.PayPeriodStart,
		&record.PayPeriodEnd,
		&record.BaseSalary,
		&record.OvertimePay,
		&record.Bonus,
		&record.Deductions,
		&record.TaxDeduction,
		&record.GrossPay,
		&record.NetPay,
		&record.Status,
		&record.ProcessedBy,
		&record.ProcessedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.EmployeeName,
		&record.EmployeeCode,
		&record.Department,
	)
	return record, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll (
			id, employee_id, pay_period_start, pay_period_end,
			base_salary, overtime_pay, bonus, deductions, tax_deduction,
			gross_pay, net_pay, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var createdID string
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		record.EmployeeID,
		record.PayPeriodStart,
		record.PayPeriodEnd,
		record.BaseSalary,
		record.OvertimePay,
		record.Bonus,
		record.Deductions,
		record.TaxDeduction,
		record.GrossPay,
		record.NetPay,
		record.Status,
	).Scan(&createdID)
	if isUniqueViolation(err) {
		return payroll.Payroll{}, payroll.ErrPeriodExists
	}
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, createdID)
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		LEFT JOIN user_profiles u ON u.id = e.user_id
		WHERE p.id = $1
	`

	record, err := scanPayroll(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		conditions = append(conditions, fmt.Sprintf("p.pay_period_start >= $%d", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		conditions = append(conditions, fmt.Sprintf("p.pay_period_end <= $%d", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM payroll p
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		LEFT JOIN user_profiles u ON u.id = e.user_id
		WHERE %s
		ORDER BY p.pay_period_start DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		record, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetPeriodSummary implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPeriodSummary(ctx context.Context, filter payroll.PayrollFilter) (payroll.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		conditions = append(conditions, fmt.Sprintf("pay_period_start >= $%d", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		conditions = append(conditions, fmt.Sprintf("pay_period_end <= $%d", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'processed'),
			   COALESCE(SUM(gross_pay), 0),
			   COALESCE(SUM(net_pay), 0),
			   COALESCE(AVG(base_salary), 0)
		FROM payroll
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var summary payroll.PeriodSummary
	err := q.QueryRow(ctx, query, args...).Scan(
		&summary.RecordCount,
		&summary.ProcessedCount,
		&summary.TotalGrossPay,
		&summary.TotalNetPay,
		&summary.AverageSalary,
	)
	if err != nil {
		return payroll.PeriodSummary{}, fmt.Errorf("failed to get payroll period summary: %w", err)
	}

	return summary, nil
}

// Update implements payroll.PayrollRepository. Drafts only; the status
// guard keeps processed records immutable.
func (r *payrollRepositoryImpl) Update(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll
		SET overtime_pay = $1, bonus = $2, deductions = $3, tax_deduction = $4,
			gross_pay = $5, net_pay = $6, status = $7,
			processed_by = $8, processed_at = $9, updated_at = NOW()
		WHERE id = $10 AND status = 'draft'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.OvertimePay,
		record.Bonus,
		record.Deductions,
		record.TaxDeduction,
		record.GrossPay,
		record.NetPay,
		record.Status,
		record.ProcessedBy,
		record.ProcessedAt,
		record.ID,
	).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, getErr := r.GetByID(ctx, record.ID)
		if getErr != nil {
			return payroll.Payroll{}, getErr
		}
		if existing.Status == payroll.StatusProcessed {
			return payroll.Payroll{}, payroll.ErrAlreadyProcessed
		}
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}
