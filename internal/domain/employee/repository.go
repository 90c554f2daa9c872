package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetDriverByAid returns the Driver whose aid reference is aidID.
	GetDriverByAid(ctx context.Context, aidID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListByPosition(ctx context.Context, position string) ([]Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	// ClearAidReferences nulls the aid reference of every employee pointing at one of aidIDs.
	ClearAidReferences(ctx context.Context, aidIDs []string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
