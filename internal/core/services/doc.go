// Package services wires the reconciler, prompts and driven ports into
// the operations exposed by the driving ports: answering forms, resolving
// single answers, document assist and settings management.
package services
