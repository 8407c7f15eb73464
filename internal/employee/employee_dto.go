package employee

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code" binding:"required"`
	ICNumber     string  `json:"ic_number" binding:"required"`
	FullName     string  `json:"full_name" binding:"required"`
	Department   *string `json:"department"`
	Position     *string `json:"position"`
	Password     string  `json:"password" binding:"required,min=8"`
	Role         string  `json:"role" binding:"omitempty,oneof=employee admin"`
}

type UpdateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	IsActive   *bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	ICNumber     string  `json:"ic_number"`
	FullName     string  `json:"full_name"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Role         string  `json:"role"`
	IsActive     bool    `json:"is_active"`
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		ICNumber:     empl.ICNumber,
		FullName:     empl.FullName,
		Department:   empl.Department,
		Position:     empl.Position,
		Role:         empl.Role,
		IsActive:     empl.IsActive,
	}
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
