package sketch

import "fmt"

// SchemaError reports a single candidate part rejected at the validation
// boundary. The planner drops the candidate and continues.
type SchemaError struct {
	Candidate string
	Reason    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: candidate %q: %s", e.Candidate, e.Reason)
}

func schemaErrorf(candidate string, format string, a ...interface{}) error {
	return &SchemaError{Candidate: candidate, Reason: fmt.Sprintf(format, a...)}
}

// ConfigError reports invalid budget parameters. The whole planning request
// for the object fails; no partial assembly is produced.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

func configErrorf(format string, a ...interface{}) error {
	return &ConfigError{Reason: fmt.Sprintf(format, a...)}
}

// AssemblyError reports a structural invariant violation (cycle, dangling
// parent, missing root). Compiler-produced assemblies never trigger it; it
// guards externally edited sketch files.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "assembly: " + e.Reason
}

// AssemblyErrorf builds an AssemblyError. Exported for the scene assembler.
func AssemblyErrorf(format string, a ...interface{}) error {
	return &AssemblyError{Reason: fmt.Sprintf(format, a...)}
}
