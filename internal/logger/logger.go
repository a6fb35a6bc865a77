package logger

// Logger is the logging surface used across the application. Components tag
// every entry so interleaved pipeline stages stay attributable.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// Nop discards all log output. Used in tests.
type Nop struct{}

func (Nop) Debug(string, string, map[string]interface{})   {}
func (Nop) Info(string, string, map[string]interface{})    {}
func (Nop) Warning(string, string, map[string]interface{}) {}
func (Nop) Error(string, error, map[string]interface{})    {}
