// Package protocol loads triage protocols: YAML documents that map
// symptom conditions to triage levels.
//
// The subpackages implement the pipeline stages. parser builds an AST with
// source locations, validator reports structural and semantic problems and
// compiler turns the AST into specifications over patients. This package
// chains them:
//
//	compiled, warnings, err := protocol.Load("protocols/respiratory.yaml", protocol.Options{})
//	if err != nil {
//	    // err lists every problem with its file:line:col
//	}
//	for _, w := range warnings {
//	    log.Warn(w.Message, "location", w.Location)
//	}
package protocol
