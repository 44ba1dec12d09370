package enquadramento

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-cargos-salarios/internal/employee"
	"go-cargos-salarios/internal/grade"
	"go-cargos-salarios/internal/grid"
	"go-cargos-salarios/internal/jobrole"
)

// Classification outcomes. "Sem Tabela" and "Sem Cargo" are valid results of
// the simulation, never errors.
const (
	StatusNoRole      = "Sem Cargo"
	StatusNoTable     = "Sem Tabela"
	StatusBelowRange  = "Abaixo da Tabela"
	StatusAboveRange  = "Excedente"
	StatusWithinRange = "Em Enquadramento"
)

// SimulationCacheKey holds the cached full-roster simulation. Invalidated by
// the kafka consumers whenever a job role is rescored or the grid changes.
const SimulationCacheKey = "enquadramento:simulation"

const DefaultDepartment = "Sem Departamento"

// Snapshot is everything the simulator reads, loaded up front so each run is
// a pure function over one consistent view of the data.
type Snapshot struct {
	Employees    []employee.Employee
	Roles        map[uuid.UUID]jobrole.JobRole
	Grades       []grade.SalaryGrade
	CellsByGrade map[uuid.UUID][]grid.GridCellRow
}

// DepartmentActual aggregates current cost and headcount per department for
// the budget overview. Uses the same salary × (1 + rate) + benefits formula
// as the simulation, independent of grid classification.
type DepartmentActual struct {
	Department string
	Headcount  int
	TotalCost  decimal.Decimal
}
