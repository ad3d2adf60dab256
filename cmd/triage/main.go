// Triage evaluates patients against declarative triage protocols.
//
// Protocols are YAML files of named predicates and prioritised rules. Each
// rule's condition is compiled into a composable specification built from
// AND, OR and NOT over symptom predicates, and the most severe matching
// rule across all protocols decides the patient's triage level.
//
// Usage:
//
//	# Evaluate one patient
//	triage evaluate --protocols protocols/ --name Ana --symptom fever --symptom "dry cough"
//
//	# Evaluate a file of patients as CSV
//	triage evaluate --patients patients.yaml --format csv
//
//	# Validate protocol files
//	triage lint --dir protocols/ --strict
//
//	# Run the tests embedded in protocols
//	triage test --protocols protocols/
//
//	# Show compiled rule expressions
//	triage describe --protocols protocols/
//
//	# Reload protocols as they change
//	triage watch --protocols protocols/
package main

func main() {
	Execute()
}
