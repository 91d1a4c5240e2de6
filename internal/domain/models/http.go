package models

// AnalyzeRequest carries the keyword posted to /analyze and /.
type AnalyzeRequest struct {
	Keyword string `form:"keyword" json:"keyword" validate:"required"`
}

// AnalyzeResponse is the JSON body returned by POST /analyze.
type AnalyzeResponse struct {
	Dates       []string `json:"dates"`
	Values      []int    `json:"values"`
	WindowLabel string   `json:"window_label"`
	Keyword     string   `json:"keyword"`
	IsDemoData  bool     `json:"is_demo_data"`
}

// ErrorResponse is the JSON error body for the analyze endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the GET /test payload.
type HealthResponse struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

// NewAnalyzeResponse shapes a FetchResult for the analyze endpoint.
func NewAnalyzeResponse(res *FetchResult) *AnalyzeResponse {
	return &AnalyzeResponse{
		Dates:       res.Series.Dates(),
		Values:      res.Series.Values(),
		WindowLabel: res.WindowLabel,
		Keyword:     res.Keyword,
		IsDemoData:  res.IsDemo(),
	}
}
