package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee は社員の外部向けビューです。現在有効な契約の時給を持ちます。
type Employee struct {
	ID           int
	FullName     string
	HourlySalary decimal.Decimal
}

// Worklog は 1 件の勤務記録です。DateLogged は日付のみを保持します。
type Worklog struct {
	DateLogged time.Time
	Duration   time.Duration
}

// EmployeeContract は社員 1 名の給与契約期間を表します。
// 終了日は一度設定すると変更できません。
type EmployeeContract struct {
	startDate    time.Time
	endDate      *time.Time
	hourlySalary decimal.Decimal
	worklogs     []Worklog
}

// NewEmployeeContract は終了日を持たない契約を生成します。
func NewEmployeeContract(hourlySalary decimal.Decimal, startDate time.Time) *EmployeeContract {
	return &EmployeeContract{startDate: startDate, hourlySalary: hourlySalary}
}

// RestoreEmployeeContract は永続化済みの状態から契約を復元します。
func RestoreEmployeeContract(hourlySalary decimal.Decimal, startDate time.Time, endDate *time.Time, worklogs []Worklog) *EmployeeContract {
	c := NewEmployeeContract(hourlySalary, startDate)
	c.endDate = cloneTime(endDate)
	c.worklogs = append([]Worklog(nil), worklogs...)
	return c
}

// StartDate は契約開始日時を返します。
func (c *EmployeeContract) StartDate() time.Time { return c.startDate }

// EndDate は契約終了日時を返します。未終了の場合は false を返します。
func (c *EmployeeContract) EndDate() (time.Time, bool) {
	if c.endDate == nil {
		return time.Time{}, false
	}
	return *c.endDate, true
}

// HourlySalary は契約の時給を返します。
func (c *EmployeeContract) HourlySalary() decimal.Decimal { return c.hourlySalary }

// IsOpen は契約が終了していない場合に true を返します。
func (c *EmployeeContract) IsOpen() bool { return c.endDate == nil }

// Worklogs は勤務記録のコピーを返します。
func (c *EmployeeContract) Worklogs() []Worklog {
	return append([]Worklog(nil), c.worklogs...)
}

// End は契約を終了します。既に終了している契約には ErrContractAlreadyEnded を返します。
func (c *EmployeeContract) End(endDate time.Time) error {
	if c.endDate != nil {
		return ErrContractAlreadyEnded
	}
	c.endDate = &endDate
	return nil
}

// covers は at が契約期間 (両端を含む) に入るかを判定します。
func (c *EmployeeContract) covers(at time.Time) bool {
	if at.Before(c.startDate) {
		return false
	}
	return c.endDate == nil || !c.endDate.Before(at)
}

func (c *EmployeeContract) clone() *EmployeeContract {
	return RestoreEmployeeContract(c.hourlySalary, c.startDate, c.endDate, c.worklogs)
}

// EmployeeInformation は社員と契約履歴をまとめた集約です。契約は開始日の昇順に並びます。
type EmployeeInformation struct {
	ID        int
	FullName  string
	Contracts []*EmployeeContract
}

// LatestContract は最後に追加された契約を返します。
func (e *EmployeeInformation) LatestContract() *EmployeeContract {
	if len(e.Contracts) == 0 {
		return nil
	}
	return e.Contracts[len(e.Contracts)-1]
}

func (e *EmployeeInformation) clone() *EmployeeInformation {
	contracts := make([]*EmployeeContract, 0, len(e.Contracts))
	for _, c := range e.Contracts {
		contracts = append(contracts, c.clone())
	}
	return &EmployeeInformation{ID: e.ID, FullName: e.FullName, Contracts: contracts}
}

// EmployeeMonthlyReport は社員ごと・月ごとの給与集計です。
type EmployeeMonthlyReport struct {
	EmployeeID int
	Year       int
	Month      time.Month
	Salary     decimal.Decimal
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
