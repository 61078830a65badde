package company

import "context"

// Store は社員集約の永続化を行うインターフェースです。
type Store interface {
	LoadEmployees(ctx context.Context, company string) ([]*EmployeeInformation, error)
	SaveEmployee(ctx context.Context, company string, info *EmployeeInformation) error
}

type noopStore struct{}

func (noopStore) LoadEmployees(context.Context, string) ([]*EmployeeInformation, error) {
	return nil, nil
}

func (noopStore) SaveEmployee(context.Context, string, *EmployeeInformation) error {
	return nil
}
