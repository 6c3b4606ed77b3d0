package responses

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationError carries the field the client has to fix in Location.
type ValidationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DataResponse struct {
	Data interface{} `json:"data"`
}
