package company

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	maxDailyHours  = 8
	minutesPerDay  = 24 * 60
	minutesPerHour = 60
)

var minutesPerHourDecimal = decimal.NewFromInt(minutesPerHour)

// Service は 1 社分の社員・契約・勤務記録を管理するユースケースです。
type Service struct {
	name   string
	store  Store
	tx     TransactionManager
	logger *zap.Logger

	mu        sync.RWMutex
	employees map[int]*EmployeeInformation
	order     []int
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	Name() string
	Employees() []Employee
	AddEmployee(ctx context.Context, in AddEmployeeInput) error
	RemoveEmployee(ctx context.Context, in RemoveEmployeeInput) error
	ReportHours(ctx context.Context, in ReportHoursInput) error
	GetMonthlyReport(ctx context.Context, in GetMonthlyReportInput) ([]EmployeeMonthlyReport, error)
}

// NewService は Service を生成します。nil の依存はインメモリ用の既定実装で補われます。
func NewService(name string, store Store, tx TransactionManager, logger *zap.Logger) *Service {
	if store == nil {
		store = noopStore{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		name:      name,
		store:     store,
		tx:        tx,
		logger:    logger.With(zap.String("company", name)),
		employees: make(map[int]*EmployeeInformation),
	}
}

// AddEmployeeInput は社員追加時の入力です。
type AddEmployeeInput struct {
	Employee          Employee
	ContractStartDate time.Time
}

// RemoveEmployeeInput は社員削除時の入力です。
type RemoveEmployeeInput struct {
	EmployeeID      int
	ContractEndDate time.Time
}

// ReportHoursInput は勤務時間報告時の入力です。
// DateAndTime から Hours 時間 Minutes 分働いたことを表します。
type ReportHoursInput struct {
	EmployeeID  int
	DateAndTime time.Time
	Hours       int
	Minutes     int
}

// GetMonthlyReportInput は月次レポート取得時の入力です。
type GetMonthlyReportInput struct {
	PeriodStartDate time.Time
	PeriodEndDate   time.Time
}

// Name は会社名を返します。
func (s *Service) Name() string {
	return s.name
}

// Employees は現在契約中の社員を追加順に返します。
func (s *Service) Employees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Employee, 0, len(s.order))
	for _, id := range s.order {
		info := s.employees[id]
		latest := info.LatestContract()
		if latest == nil || !latest.IsOpen() {
			continue
		}
		result = append(result, Employee{
			ID:           info.ID,
			FullName:     info.FullName,
			HourlySalary: latest.HourlySalary(),
		})
	}
	return result
}

// Restore は Store に保存済みの社員を読み込み、メモリ上の状態を置き換えます。
func (s *Service) Restore(ctx context.Context) error {
	var loaded []*EmployeeInformation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.store.LoadEmployees(txCtx, s.name)
		if err != nil {
			return err
		}
		loaded = result
		return nil
	}); err != nil {
		return fmt.Errorf("company: restore employees: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = make(map[int]*EmployeeInformation, len(loaded))
	s.order = s.order[:0]
	for _, info := range loaded {
		if _, ok := s.employees[info.ID]; !ok {
			s.order = append(s.order, info.ID)
		}
		s.employees[info.ID] = info
	}

	s.logger.Info("employees restored", zap.Int("count", len(s.order)))
	return nil
}

// AddEmployee は指定日から社員を追加します。既存社員の場合は契約を更新します。
func (s *Service) AddEmployee(ctx context.Context, in AddEmployeeInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ContractStartDate = ledgerPrecision(in.ContractStartDate)
	emp := in.Employee
	existing, ok := s.employees[emp.ID]
	if !ok {
		info := &EmployeeInformation{
			ID:        emp.ID,
			FullName:  emp.FullName,
			Contracts: []*EmployeeContract{NewEmployeeContract(emp.HourlySalary, in.ContractStartDate)},
		}
		if err := s.commit(ctx, info); err != nil {
			return s.reject("add employee", emp.ID, err)
		}
		s.logger.Debug("employee added", zap.Int("employee_id", emp.ID), zap.Stringer("hourly_salary", emp.HourlySalary))
		return nil
	}

	latest := existing.LatestContract()
	if in.ContractStartDate.Before(latest.StartDate()) {
		return s.reject("add employee", emp.ID, fmt.Errorf("start date %s: %w", in.ContractStartDate.Format(time.RFC3339), ErrInvalidStartDate))
	}

	// 同じ時給で契約中なら新しい契約を作っても差が出ない。
	if latest.IsOpen() && latest.HourlySalary().Equal(emp.HourlySalary) {
		return nil
	}

	info := existing.clone()
	if current := info.LatestContract(); current.IsOpen() {
		if err := current.End(in.ContractStartDate); err != nil {
			return s.reject("add employee", emp.ID, err)
		}
	}
	info.Contracts = append(info.Contracts, NewEmployeeContract(emp.HourlySalary, in.ContractStartDate))

	if err := s.commit(ctx, info); err != nil {
		return s.reject("add employee", emp.ID, err)
	}

	s.logger.Debug("employee contract renewed",
		zap.Int("employee_id", emp.ID),
		zap.Stringer("hourly_salary", emp.HourlySalary),
		zap.Int("contracts", len(info.Contracts)),
	)
	return nil
}

// RemoveEmployee は指定日で社員の現在の契約を終了します。
func (s *Service) RemoveEmployee(ctx context.Context, in RemoveEmployeeInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ContractEndDate = ledgerPrecision(in.ContractEndDate)
	existing, ok := s.employees[in.EmployeeID]
	if !ok {
		return s.reject("remove employee", in.EmployeeID, fmt.Errorf("employee %d: %w", in.EmployeeID, ErrEmployeeNotFound))
	}

	latest := existing.LatestContract()
	if !latest.IsOpen() {
		return s.reject("remove employee", in.EmployeeID, fmt.Errorf("employee %d: %w", in.EmployeeID, ErrEmployeeAlreadyRemoved))
	}

	if !in.ContractEndDate.After(latest.StartDate()) {
		return s.reject("remove employee", in.EmployeeID, fmt.Errorf("end date %s: %w", in.ContractEndDate.Format(time.RFC3339), ErrInvalidEndDate))
	}

	info := existing.clone()
	if err := info.LatestContract().End(in.ContractEndDate); err != nil {
		return s.reject("remove employee", in.EmployeeID, err)
	}

	if err := s.commit(ctx, info); err != nil {
		return s.reject("remove employee", in.EmployeeID, err)
	}

	s.logger.Debug("employee removed", zap.Int("employee_id", in.EmployeeID), zap.Time("end_date", in.ContractEndDate))
	return nil
}

// ReportHours は勤務時間を記録します。日付をまたぐ場合は 2 件に分割し、両方が記録できる場合のみ反映します。
func (s *Service) ReportHours(ctx context.Context, in ReportHoursInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.employees[in.EmployeeID]
	if !ok {
		return s.reject("report hours", in.EmployeeID, fmt.Errorf("employee %d: %w", in.EmployeeID, ErrEmployeeNotFound))
	}

	if in.Hours < 0 {
		return s.reject("report hours", in.EmployeeID, fmt.Errorf("hours %d: %w", in.Hours, ErrInvalidHours))
	}

	if in.Minutes < 0 || in.Minutes >= minutesPerHour {
		return s.reject("report hours", in.EmployeeID, fmt.Errorf("minutes %d: %w", in.Minutes, ErrInvalidMinutes))
	}

	if in.Hours > maxDailyHours || (in.Hours == maxDailyHours && in.Minutes != 0) {
		return s.reject("report hours", in.EmployeeID, fmt.Errorf("%dh%02dm: %w", in.Hours, in.Minutes, ErrOvertimeNotAllowed))
	}

	info := existing.clone()
	for _, worklog := range splitWorklog(in.DateAndTime, in.Hours*minutesPerHour+in.Minutes) {
		contract := contractAt(info, ledgerPrecision(in.DateAndTime))
		if contract == nil {
			return s.reject("report hours", in.EmployeeID, fmt.Errorf("%s: %w", in.DateAndTime.Format("02-01-2006"), ErrNoContractAtDate))
		}
		contract.worklogs = append(contract.worklogs, worklog)
	}

	if err := s.commit(ctx, info); err != nil {
		return s.reject("report hours", in.EmployeeID, err)
	}

	s.logger.Debug("hours reported",
		zap.Int("employee_id", in.EmployeeID),
		zap.Time("date_and_time", in.DateAndTime),
		zap.Int("hours", in.Hours),
		zap.Int("minutes", in.Minutes),
	)
	return nil
}

// GetMonthlyReport は期間内の各月について、給与が発生した社員ごとの集計を返します。
// 期間の終了月は日付に関係なく含まれます。
func (s *Service) GetMonthlyReport(ctx context.Context, in GetMonthlyReportInput) ([]EmployeeMonthlyReport, error) {
	if !in.PeriodStartDate.Before(in.PeriodEndDate) {
		return nil, s.reject("monthly report", 0, fmt.Errorf("%s - %s: %w",
			in.PeriodStartDate.Format(time.DateOnly), in.PeriodEndDate.Format(time.DateOnly), ErrInvalidReportPeriod))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var reports []EmployeeMonthlyReport
	for _, ym := range monthsBetween(in.PeriodStartDate, in.PeriodEndDate) {
		for _, id := range s.order {
			salary := monthlySalary(s.employees[id], ym.year, ym.month)
			if salary.IsZero() {
				continue
			}
			reports = append(reports, EmployeeMonthlyReport{
				EmployeeID: id,
				Year:       ym.year,
				Month:      ym.month,
				Salary:     salary,
			})
		}
	}

	return reports, nil
}

// commit は集約を Store に保存し、成功した場合のみメモリ上の状態を置き換えます。
// 呼び出し側で mu を保持している必要があります。
func (s *Service) commit(ctx context.Context, info *EmployeeInformation) error {
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.store.SaveEmployee(txCtx, s.name, info)
	}); err != nil {
		return fmt.Errorf("company: save employee %d: %w", info.ID, err)
	}

	if _, ok := s.employees[info.ID]; !ok {
		s.order = append(s.order, info.ID)
	}
	s.employees[info.ID] = info
	return nil
}

func (s *Service) reject(op string, employeeID int, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if employeeID != 0 {
		fields = append(fields, zap.Int("employee_id", employeeID))
	}
	if IsValidationError(err) {
		s.logger.Info("operation rejected", fields...)
	} else {
		s.logger.Error("operation failed", fields...)
	}
	return err
}

// splitWorklog は開始日時と分数から勤務記録を作ります。深夜 0 時をまたぐ分は翌日の記録になります。
func splitWorklog(start time.Time, totalMinutes int) []Worklog {
	day := startOfDay(start)
	startMinute := start.Hour()*minutesPerHour + start.Minute()

	if startMinute+totalMinutes <= minutesPerDay {
		return []Worklog{{DateLogged: day, Duration: time.Duration(totalMinutes) * time.Minute}}
	}

	firstDay := minutesPerDay - startMinute
	return []Worklog{
		{DateLogged: day, Duration: time.Duration(firstDay) * time.Minute},
		{DateLogged: day.AddDate(0, 0, 1), Duration: time.Duration(totalMinutes-firstDay) * time.Minute},
	}
}

// contractAt は at を含む契約のうち最後に追加されたものを返します。
func contractAt(info *EmployeeInformation, at time.Time) *EmployeeContract {
	for i := len(info.Contracts) - 1; i >= 0; i-- {
		if info.Contracts[i].covers(at) {
			return info.Contracts[i]
		}
	}
	return nil
}

func monthlySalary(info *EmployeeInformation, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, contract := range info.Contracts {
		var minutes int64
		for _, w := range contract.worklogs {
			if w.DateLogged.Year() == year && w.DateLogged.Month() == month {
				minutes += int64(w.Duration / time.Minute)
			}
		}
		if minutes == 0 {
			continue
		}
		total = total.Add(contract.hourlySalary.Mul(decimal.NewFromInt(minutes)).Div(minutesPerHourDecimal))
	}
	return total
}

type yearMonth struct {
	year  int
	month time.Month
}

func monthsBetween(from, to time.Time) []yearMonth {
	var months []yearMonth
	year, month := from.Year(), from.Month()
	for year < to.Year() || (year == to.Year() && month <= to.Month()) {
		months = append(months, yearMonth{year: year, month: month})
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return months
}

// ledgerPrecision は時刻を PostgreSQL の TIMESTAMPTZ と同じマイクロ秒精度に揃えます。
// メモリ上の契約期間と Restore 後の契約期間を一致させるために使います。
func ledgerPrecision(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
