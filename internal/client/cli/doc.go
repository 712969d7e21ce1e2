// Package cli provides the vehireg command-line client.
//
// It wires configuration, logging, the REST client and the services into
// a cobra command tree. Every subcommand has an equivalent in the
// interactive shell started by running vehireg without arguments.
//
// Commands:
//   - onboard             — register a vehicle: form, one photo per tag, review, submit
//   - list | search       — list vehicles, optionally filtered by registration number
//   - show / update / delete <id>
//   - makes               — makes with their models
//   - add-make / add-model
//
// Onboard drives a wizard.Wizard; a failed submission can be retried from
// the review step without re-entering anything. Typing "cancel" at any
// prompt of a multi-step command abandons it.
package cli
