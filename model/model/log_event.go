package model

const (
	LogEventTypeRequest  = "Request"
	LogEventTypeResponse = "Response"
)

// LogEvent is the fixed-shape record fanned out to the log sinks. Field
// names double as the console JSON keys, tabular sinks remap them.
type LogEvent struct {
	Name               string      `json:"Name"`
	Type               string      `json:"Type"`
	TraceId            string      `json:"TraceId"`
	EventName          string      `json:"EventName"`
	RequestMethod      string      `json:"RequestMethod,omitempty"`
	RequestUrl         string      `json:"RequestUrl,omitempty"`
	RequestBody        interface{} `json:"RequestBody,omitempty"`
	ResponseStatusCode int         `json:"ResponseStatusCode,omitempty"`
	ResponseHeaders    interface{} `json:"ResponseHeaders,omitempty"`
	ResponseBody       interface{} `json:"ResponseBody,omitempty"`
}
