package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// successResponse acknowledges mutations that return no body.
type successResponse struct {
	Success bool `json:"success"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// --- Clients ---

type createClientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

// updateClientRequest is the allow-list of client fields accepted on PATCH.
// Ownership (therapist_id) is deliberately not bindable.
type updateClientRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"  validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// --- Therapists ---

type createTherapistRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"omitempty,oneof=ADMIN THERAPIST"`
}

// updateTherapistRequest is the allow-list of account fields accepted on
// PATCH/PUT. A present password is re-hashed by the service.
type updateTherapistRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Role      *string `json:"role"     validate:"omitempty,oneof=ADMIN THERAPIST"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}
