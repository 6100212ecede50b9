package dto

// SubmitTestRequest is the payload sent once when an exam session ends.
// Answers and TimeTaken are decoded loosely and normalized by the grading
// service; a client-computed score, if present, is never read.
type SubmitTestRequest struct {
	TestID    string         `json:"testId"`
	Answers   map[string]any `json:"answers"`
	TimeTaken any            `json:"timeTaken" swaggertype:"number"`
	UserID    *string        `json:"userId,omitempty"`
}

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Whatsapp  *string `json:"whatsapp"`
	Major     *string `json:"major"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
