package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
	Token   string `json:"token,omitempty"`
}

type PerformancePointDTO struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type SubjectMasteryDTO struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

type DashboardUserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DashboardStatsDTO feeds the student dashboard. All scores are rounded percentages.
type DashboardStatsDTO struct {
	User            DashboardUserDTO      `json:"user"`
	PerformanceData []PerformancePointDTO `json:"performanceData"`
	SubjectMastery  []SubjectMasteryDTO   `json:"subjectMastery"`
	TestsCompleted  int                   `json:"testsCompleted"`
	AvgScore        int                   `json:"avgScore"`
}
