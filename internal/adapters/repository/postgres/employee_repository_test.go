package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-salary/internal/core/company"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type stubContractRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubContractRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanContract_Success(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC)
	worklogs := map[contractKey][]company.Worklog{
		{employeeID: 7, seq: 1}: {{DateLogged: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Duration: time.Hour}},
	}

	row := stubContractRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 5 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*int)) = 7
		*(dest[1].(*int)) = 1
		*(dest[2].(*time.Time)) = start

		endDest := dest[3].(*sql.NullTime)
		endDest.Time = end
		endDest.Valid = true

		*(dest[4].(*string)) = "20.50"
		return nil
	}}

	contract, key, err := scanContract(row, worklogs)
	if err != nil {
		t.Fatalf("scanContract returned error: %v", err)
	}

	if key.employeeID != 7 || key.seq != 1 {
		t.Fatalf("unexpected key %+v", key)
	}
	if !contract.HourlySalary().Equal(decimal.RequireFromString("20.5")) {
		t.Fatalf("unexpected hourly salary %s", contract.HourlySalary())
	}
	if got, ok := contract.EndDate(); !ok || !got.Equal(end) {
		t.Fatalf("expected end date %s, got %s (%t)", end, got, ok)
	}
	if len(contract.Worklogs()) != 1 {
		t.Fatalf("expected worklogs to be attached, got %d", len(contract.Worklogs()))
	}
}

func TestScanContract_InvalidSalary(t *testing.T) {
	t.Parallel()

	row := stubContractRow{scanFn: func(dest ...interface{}) error {
		*(dest[4].(*string)) = "not-a-number"
		return nil
	}}

	if _, _, err := scanContract(row, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	fkErr := &pgconn.PgError{Code: employeeForeignKeyViolationCode, ConstraintName: "worklogs_contract_fkey"}
	if !errors.Is(translateEmployeePgError(fkErr), company.ErrEmployeeNotFound) {
		t.Fatalf("expected fk violation to map to ErrEmployeeNotFound")
	}

	checkErr := &pgconn.PgError{Code: employeeCheckViolationCode, ConstraintName: "employee_contracts_period_check"}
	if !errors.Is(translateEmployeePgError(checkErr), company.ErrInvalidEndDate) {
		t.Fatalf("expected check violation to map to ErrInvalidEndDate")
	}

	if !errors.Is(translateEmployeePgError(pgx.ErrNoRows), company.ErrEmployeeNotFound) {
		t.Fatalf("expected no rows to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func newEmployeeInformation() *company.EmployeeInformation {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	renewal := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	return &company.EmployeeInformation{
		ID:       1,
		FullName: "Test worker 1",
		Contracts: []*company.EmployeeContract{
			company.RestoreEmployeeContract(decimal.RequireFromString("20"), start, &renewal, []company.Worklog{
				{DateLogged: day(2), Duration: 8 * time.Hour},
			}),
			company.RestoreEmployeeContract(decimal.RequireFromString("25.5"), renewal, nil, []company.Worklog{
				{DateLogged: day(15), Duration: 8 * time.Hour},
				{DateLogged: day(16), Duration: 90 * time.Minute},
			}),
		},
	}
}

func TestEmployeeRepository_SaveEmployee_AppendsNewWorklogs(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec("INSERT INTO employees").
		WithArgs("acme", 1, "Test worker 1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO employee_contracts").
		WithArgs("acme", 1, 0, pgxmock.AnyArg(), pgxmock.AnyArg(), "20").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO employee_contracts").
		WithArgs("acme", 1, 1, pgxmock.AnyArg(), nil, "25.5").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT contract_seq").
		WithArgs("acme", 1).
		WillReturnRows(pgxmock.NewRows([]string{"contract_seq", "count"}).
			AddRow(0, 1).
			AddRow(1, 1))
	mock.ExpectExec("INSERT INTO worklogs").
		WithArgs("acme", 1, 1, 1, pgxmock.AnyArg(), 90).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.SaveEmployee(context.Background(), "acme", newEmployeeInformation()); err != nil {
		t.Fatalf("SaveEmployee returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_SaveEmployee_TranslatesError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec("INSERT INTO employees").
		WithArgs("acme", 1, "Test worker 1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO employee_contracts").
		WithArgs("acme", 1, 0, pgxmock.AnyArg(), pgxmock.AnyArg(), "20").
		WillReturnError(&pgconn.PgError{Code: employeeCheckViolationCode, ConstraintName: "employee_contracts_period_check"})

	err = repo.SaveEmployee(context.Background(), "acme", newEmployeeInformation())
	if !errors.Is(err, company.ErrInvalidEndDate) {
		t.Fatalf("expected ErrInvalidEndDate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_LoadEmployees(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	renewal := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	mock.ExpectQuery("SELECT employee_id, contract_seq, date_logged").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "contract_seq", "date_logged", "duration_minutes"}).
			AddRow(1, 0, day(2), 480).
			AddRow(1, 1, day(15), 480).
			AddRow(1, 1, day(16), 90))
	mock.ExpectQuery("FROM employee_contracts").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "seq", "start_date", "end_date", "hourly_salary"}).
			AddRow(1, 0, start, renewal, "20").
			AddRow(1, 1, renewal, nil, "25.5").
			AddRow(2, 0, start, nil, "30"))
	mock.ExpectQuery("FROM employees").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name"}).
			AddRow(2, "Test worker 2").
			AddRow(1, "Test worker 1"))

	employees, err := repo.LoadEmployees(context.Background(), "acme")
	if err != nil {
		t.Fatalf("LoadEmployees returned error: %v", err)
	}

	if len(employees) != 2 || employees[0].ID != 2 || employees[1].ID != 1 {
		t.Fatalf("expected employees in registration order, got %+v", employees)
	}

	first := employees[1]
	if len(first.Contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(first.Contracts))
	}
	if first.Contracts[0].IsOpen() || !first.Contracts[1].IsOpen() {
		t.Fatalf("expected only the latest contract to be open")
	}
	logs := first.Contracts[1].Worklogs()
	if len(logs) != 2 || logs[1].Duration != 90*time.Minute {
		t.Fatalf("unexpected worklogs %+v", logs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_LoadEmployees_MissingContracts(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery("SELECT employee_id, contract_seq, date_logged").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "contract_seq", "date_logged", "duration_minutes"}))
	mock.ExpectQuery("FROM employee_contracts").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "seq", "start_date", "end_date", "hourly_salary"}))
	mock.ExpectQuery("FROM employees").
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name"}).AddRow(1, "Test worker 1"))

	if _, err := repo.LoadEmployees(context.Background(), "acme"); err == nil {
		t.Fatal("expected error for employee without contracts")
	}
}
