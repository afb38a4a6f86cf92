package cli

import (
	"context"

	"github.com/dmitrijs2005/prepa/internal/client/models"
)

func (a *App) ListEmployees(ctx context.Context) error {
	list, err := a.employeeService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No employees.")
		return nil
	}
	for _, e := range list {
		a.println(e.String())
	}
	return nil
}

func (a *App) AddEmployee(ctx context.Context) error {
	var (
		e   models.Employee
		err error
	)

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &e.Name},
		{"Surname", &e.Surname},
		{"Position", &e.Position},
		{"Department", &e.Department},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.output()); err != nil {
			return err
		}
	}

	added, err := a.employeeService.Add(ctx, e)
	if err != nil {
		return err
	}
	a.println("Employee added:", added.String())
	return nil
}
