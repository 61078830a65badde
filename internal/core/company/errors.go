package company

import "errors"

var (
	// ErrEmployeeNotFound は社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("company: employee does not exist")
	// ErrInvalidStartDate は契約開始日が直近の契約より前の場合に返却されます。
	ErrInvalidStartDate = errors.New("company: invalid contract start date")
	// ErrEmployeeAlreadyRemoved は社員の契約が既に終了している場合に返却されます。
	ErrEmployeeAlreadyRemoved = errors.New("company: employee is already removed")
	// ErrInvalidEndDate は契約終了日が開始日以前の場合に返却されます。
	ErrInvalidEndDate = errors.New("company: end date is not after contract start date")
	// ErrInvalidHours は時間が負の場合に返却されます。
	ErrInvalidHours = errors.New("company: invalid hours")
	// ErrInvalidMinutes は分が 0〜59 の範囲外の場合に返却されます。
	ErrInvalidMinutes = errors.New("company: invalid minutes")
	// ErrOvertimeNotAllowed は 8 時間を超える勤務報告に返却されます。
	ErrOvertimeNotAllowed = errors.New("company: overtime is not allowed")
	// ErrNoContractAtDate は指定日時に有効な契約がない場合に返却されます。
	ErrNoContractAtDate = errors.New("company: employee did not have contract at date")
	// ErrInvalidReportPeriod はレポート期間の開始が終了以降の場合に返却されます。
	ErrInvalidReportPeriod = errors.New("company: start date is not before end date")
	// ErrContractAlreadyEnded は終了済み契約を再度終了しようとした場合に返却されます。
	ErrContractAlreadyEnded = errors.New("company: contract is already ended")
)

var validationErrors = []error{
	ErrEmployeeNotFound,
	ErrInvalidStartDate,
	ErrEmployeeAlreadyRemoved,
	ErrInvalidEndDate,
	ErrInvalidHours,
	ErrInvalidMinutes,
	ErrOvertimeNotAllowed,
	ErrNoContractAtDate,
	ErrInvalidReportPeriod,
	ErrContractAlreadyEnded,
}

// IsValidationError は err がドメインの検証エラーかどうかを判定します。
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
