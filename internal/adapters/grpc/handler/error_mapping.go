package handler

import (
	"errors"

	"github.com/ogurasousui/employee-salary/internal/core/company"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, company.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, company.ErrEmployeeAlreadyRemoved),
		errors.Is(err, company.ErrNoContractAtDate),
		errors.Is(err, company.ErrContractAlreadyEnded):
		return status.Error(codes.FailedPrecondition, err.Error())
	case company.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
