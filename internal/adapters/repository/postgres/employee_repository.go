package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-salary/internal/core/company"
	pgdb "github.com/ogurasousui/employee-salary/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	employeeForeignKeyViolationCode = "23503"
	employeeCheckViolationCode      = "23514"
)

// EmployeeRepository は PostgreSQL を利用した社員集約 (契約・勤務記録を含む) の永続化実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

var _ company.Store = (*EmployeeRepository)(nil)

type contractKey struct {
	employeeID int
	seq        int
}

// SaveEmployee は社員を登録または更新し、契約を upsert し、未保存の勤務記録を追記します。
// 勤務記録は追記のみのため、保存済み件数より後ろの記録だけを挿入します。
func (r *EmployeeRepository) SaveEmployee(ctx context.Context, companyName string, info *company.EmployeeInformation) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	if _, err := exec.Exec(ctx, `
        INSERT INTO employees (company, id, full_name)
        VALUES ($1, $2, $3)
        ON CONFLICT (company, id) DO UPDATE SET full_name = EXCLUDED.full_name
    `, companyName, info.ID, info.FullName); err != nil {
		return translateEmployeePgError(err)
	}

	for seq, contract := range info.Contracts {
		if _, err := exec.Exec(ctx, `
            INSERT INTO employee_contracts (company, employee_id, seq, start_date, end_date, hourly_salary)
            VALUES ($1, $2, $3, $4, $5, $6::numeric)
            ON CONFLICT (company, employee_id, seq) DO UPDATE SET end_date = EXCLUDED.end_date
        `,
			companyName,
			info.ID,
			seq,
			contract.StartDate(),
			nullableEndDate(contract),
			contract.HourlySalary().String(),
		); err != nil {
			return translateEmployeePgError(err)
		}
	}

	persisted, err := r.worklogCounts(ctx, exec, companyName, info.ID)
	if err != nil {
		return err
	}

	for seq, contract := range info.Contracts {
		worklogs := contract.Worklogs()
		for i := persisted[seq]; i < len(worklogs); i++ {
			w := worklogs[i]
			if _, err := exec.Exec(ctx, `
                INSERT INTO worklogs (company, employee_id, contract_seq, seq, date_logged, duration_minutes)
                VALUES ($1, $2, $3, $4, $5, $6)
            `,
				companyName,
				info.ID,
				seq,
				i,
				dateOnly(w.DateLogged),
				int(w.Duration/time.Minute),
			); err != nil {
				return translateEmployeePgError(err)
			}
		}
	}

	return nil
}

func (r *EmployeeRepository) worklogCounts(ctx context.Context, exec pgdb.Queryer, companyName string, employeeID int) (map[int]int, error) {
	rows, err := exec.Query(ctx, `
        SELECT contract_seq, COUNT(*)
          FROM worklogs
         WHERE company = $1 AND employee_id = $2
         GROUP BY contract_seq
    `, companyName, employeeID)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var seq, count int
		if err := rows.Scan(&seq, &count); err != nil {
			return nil, translateEmployeePgError(err)
		}
		counts[seq] = count
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return counts, nil
}

// LoadEmployees は会社の全社員を最初に登録された順で読み込みます。
func (r *EmployeeRepository) LoadEmployees(ctx context.Context, companyName string) ([]*company.EmployeeInformation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	worklogs, err := r.loadWorklogs(ctx, exec, companyName)
	if err != nil {
		return nil, err
	}

	contracts, err := r.loadContracts(ctx, exec, companyName, worklogs)
	if err != nil {
		return nil, err
	}

	rows, err := exec.Query(ctx, `
        SELECT id, full_name
          FROM employees
         WHERE company = $1
         ORDER BY created_seq
    `, companyName)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	var employees []*company.EmployeeInformation
	for rows.Next() {
		var (
			id       int
			fullName string
		)
		if err := rows.Scan(&id, &fullName); err != nil {
			return nil, translateEmployeePgError(err)
		}
		if len(contracts[id]) == 0 {
			return nil, fmt.Errorf("postgres: employee %d has no contracts", id)
		}
		employees = append(employees, &company.EmployeeInformation{ID: id, FullName: fullName, Contracts: contracts[id]})
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

func (r *EmployeeRepository) loadContracts(ctx context.Context, exec pgdb.Queryer, companyName string, worklogs map[contractKey][]company.Worklog) (map[int][]*company.EmployeeContract, error) {
	rows, err := exec.Query(ctx, `
        SELECT employee_id, seq, start_date, end_date, hourly_salary::text
          FROM employee_contracts
         WHERE company = $1
         ORDER BY employee_id, seq
    `, companyName)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	contracts := make(map[int][]*company.EmployeeContract)
	for rows.Next() {
		contract, key, err := scanContract(rows, worklogs)
		if err != nil {
			return nil, err
		}
		contracts[key.employeeID] = append(contracts[key.employeeID], contract)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return contracts, nil
}

func (r *EmployeeRepository) loadWorklogs(ctx context.Context, exec pgdb.Queryer, companyName string) (map[contractKey][]company.Worklog, error) {
	rows, err := exec.Query(ctx, `
        SELECT employee_id, contract_seq, date_logged, duration_minutes
          FROM worklogs
         WHERE company = $1
         ORDER BY employee_id, contract_seq, seq
    `, companyName)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	worklogs := make(map[contractKey][]company.Worklog)
	for rows.Next() {
		var (
			key        contractKey
			dateLogged time.Time
			minutes    int
		)
		if err := rows.Scan(&key.employeeID, &key.seq, &dateLogged, &minutes); err != nil {
			return nil, translateEmployeePgError(err)
		}
		worklogs[key] = append(worklogs[key], company.Worklog{
			DateLogged: dateOnly(dateLogged),
			Duration:   time.Duration(minutes) * time.Minute,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return worklogs, nil
}

func scanContract(row pgx.Row, worklogs map[contractKey][]company.Worklog) (*company.EmployeeContract, contractKey, error) {
	var (
		key       contractKey
		startDate time.Time
		endDate   sql.NullTime
		salaryRaw string
	)

	if err := row.Scan(&key.employeeID, &key.seq, &startDate, &endDate, &salaryRaw); err != nil {
		return nil, key, translateEmployeePgError(err)
	}

	salary, err := decimal.NewFromString(salaryRaw)
	if err != nil {
		return nil, key, fmt.Errorf("postgres: parse hourly salary %q: %w", salaryRaw, err)
	}

	var endPtr *time.Time
	if endDate.Valid {
		t := endDate.Time.UTC()
		endPtr = &t
	}

	return company.RestoreEmployeeContract(salary, startDate.UTC(), endPtr, worklogs[key]), key, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return company.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case employeeForeignKeyViolationCode:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, company.ErrEmployeeNotFound)
		case employeeCheckViolationCode:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, company.ErrInvalidEndDate)
		}
	}

	return err
}

func nullableEndDate(contract *company.EmployeeContract) any {
	end, ok := contract.EndDate()
	if !ok {
		return nil
	}
	return end
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
